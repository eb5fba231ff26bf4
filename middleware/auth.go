package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Amolika28-Kale/dubaip2p-sub000/database"
	"github.com/Amolika28-Kale/dubaip2p-sub000/models"
	"github.com/Amolika28-Kale/dubaip2p-sub000/utils"

	"gorm.io/gorm"
)

// AuthMiddleware validates the bearer token and re-fetches the user row, so a
// role or status change takes effect on the next request instead of waiting
// out the token lifetime. The fresh *models.User lands in the context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := authenticate(w, r)
		if !ok {
			return
		}
		ctx := context.WithValue(r.Context(), utils.UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func authenticate(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

	claims, err := utils.ValidateAccessToken(tokenStr)
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			utils.WriteError(w, http.StatusUnauthorized, "Session expired, please log in again")
			return nil, false
		}
		utils.WriteError(w, http.StatusUnauthorized, "Invalid token")
		return nil, false
	}

	userID, ok := utils.ClaimUserID(claims)
	if !ok || userID == 0 {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid token")
		return nil, false
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return nil, false
		}
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return nil, false
	}

	return &user, true
}

// CurrentUser returns the authenticated user stored by AuthMiddleware.
func CurrentUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(utils.UserKey).(*models.User)
	return u, ok
}
