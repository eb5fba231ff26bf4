package middleware

import (
	"context"
	"net/http"

	"github.com/Amolika28-Kale/dubaip2p-sub000/utils"
)

// AdminAuthMiddleware verifies that the request is from an authenticated
// administrator. The admin flag is taken from the re-fetched user row, not
// from the token, so a demotion locks an admin out immediately.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := authenticate(w, r)
		if !ok {
			return
		}
		if !user.IsAdmin {
			utils.WriteError(w, http.StatusForbidden, "Forbidden: Admin access required")
			return
		}
		ctx := context.WithValue(r.Context(), utils.UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
