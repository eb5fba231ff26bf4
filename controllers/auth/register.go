package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/Amolika28-Kale/dubaip2p-sub000/database"
	"github.com/Amolika28-Kale/dubaip2p-sub000/middleware"
	"github.com/Amolika28-Kale/dubaip2p-sub000/models"
	"github.com/Amolika28-Kale/dubaip2p-sub000/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SignupRequest struct {
	Username             string `json:"username" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Phone                string `json:"phone"`
	Password             string `json:"password" validate:"required,pwdmin"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	ReferralCode         string `json:"referral_code"`
}

func SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.ReferralCode = strings.TrimSpace(req.ReferralCode)

	db := database.DB

	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Email is already registered"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[signup] DB error checking email: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if req.Phone != "" {
		if err := db.Where("phone = ?", req.Phone).First(&existing).Error; err == nil {
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Phone number is already registered"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[signup] DB error checking phone: %v", err)
			utils.WriteError(w, http.StatusInternalServerError, "Server error")
			return
		}
	}

	// Referral is optional; an unknown code is rejected rather than ignored.
	var reffBy *uint
	if req.ReferralCode != "" {
		var refOwner models.User
		if err := db.Where("reff_code = ?", req.ReferralCode).First(&refOwner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.WriteError(w, http.StatusBadRequest, "Invalid referral code")
				return
			}
			log.Printf("[signup] DB error fetching referral %s: %v", req.ReferralCode, err)
			utils.WriteError(w, http.StatusInternalServerError, "Server error")
			return
		}
		reffBy = &refOwner.ID
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	code, err := generateUniqueReffCode(db, 8)
	if err != nil {
		log.Printf("[signup] generateUniqueReffCode error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	newUser := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		ReffCode: code,
		ReffBy:   reffBy,
	}
	if req.Phone != "" {
		newUser.Phone = utils.PtrString(req.Phone)
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("[signup] DB Create user error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Signup failed, please try again")
		return
	}

	token, err := utils.GenerateAccessToken(newUser.ID, newUser.Email, newUser.Username, newUser.IsAdmin)
	if err != nil {
		log.Printf("[signup] token generation error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Account created",
		Data: map[string]interface{}{
			"token": token,
			"user":  newUser,
		},
	})
}

func generateUniqueReffCode(db *gorm.DB, length int) (string, error) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxAttempts := 100

	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := randomString(alphabet, length)
		if err != nil {
			return "", err
		}
		var count int64
		if err := db.Model(&models.User{}).Where("reff_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique referral code after %d attempts", maxAttempts)
}

func randomString(alphabet string, length int) (string, error) {
	buf := make([]byte, length)
	out := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := 0; i < length; i++ {
		out[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(out), nil
}
