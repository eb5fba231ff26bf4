package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Amolika28-Kale/dubaip2p-sub000/database"
	"github.com/Amolika28-Kale/dubaip2p-sub000/middleware"
	"github.com/Amolika28-Kale/dubaip2p-sub000/models"
	"github.com/Amolika28-Kale/dubaip2p-sub000/utils"

	"gorm.io/gorm"
)

// MeHandler returns the authenticated user's profile. The row is already
// fresh: the auth middleware re-fetched it for this request.
func MeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: user})
}

type UpdateMeRequest struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

// UpdateMeHandler updates username and phone. Email, referral code and admin
// flag are immutable through this endpoint.
func UpdateMeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateMeRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	updates := map[string]interface{}{}
	if v := strings.TrimSpace(req.Username); v != "" {
		updates["username"] = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		var other models.User
		err := database.DB.Where("phone = ? AND id <> ?", v, user.ID).First(&other).Error
		if err == nil {
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Phone number is already registered"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusInternalServerError, "Server error")
			return
		}
		updates["phone"] = v
	}
	if len(updates) == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	if err := database.DB.Model(user).Updates(updates).Error; err != nil {
		log.Printf("[profile] update error for user %d: %v", user.ID, err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Profile updated", Data: user})
}
