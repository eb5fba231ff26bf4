package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Amolika28-Kale/dubaip2p-sub000/database"
	"github.com/Amolika28-Kale/dubaip2p-sub000/middleware"
	"github.com/Amolika28-Kale/dubaip2p-sub000/models"
	"github.com/Amolika28-Kale/dubaip2p-sub000/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	otpTTL         = 10 * time.Minute
	otpMaxAttempts = 5
)

type RequestOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordRequestOTPHandler issues a fresh 6-digit code and emails it.
// Any previous code for the same email is discarded.
func ForgotPasswordRequestOTPHandler(w http.ResponseWriter, r *http.Request) {
	var req RequestOTPRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	db := database.DB

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Email is not registered")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	code, err := generateOTPCode()
	if err != nil {
		log.Printf("[forgot-password] code generation error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	// One live code per email; purge stale and superseded rows first.
	if err := db.Where("email = ?", req.Email).Delete(&models.Otp{}).Error; err != nil {
		log.Printf("[forgot-password] purge error: %v", err)
	}
	otp := models.Otp{
		Email:     req.Email,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := db.Create(&otp).Error; err != nil {
		log.Printf("[forgot-password] DB Create otp error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	if err := utils.SendOtp(req.Email, code); err != nil {
		log.Printf("[forgot-password] mail error for %s: %v", req.Email, err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to send verification code. Please try again later.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Verification code sent"})
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// ForgotPasswordVerifyOTPHandler checks a code against the stored hash. After
// five wrong attempts the code is invalidated.
func ForgotPasswordVerifyOTPHandler(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	otp, ok := liveOtp(w, req.Email)
	if !ok {
		return
	}

	if otp.Attempts >= otpMaxAttempts {
		utils.WriteError(w, http.StatusBadRequest, "Too many wrong attempts, request a new code")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(strings.TrimSpace(req.Code))); err != nil {
		database.DB.Model(otp).Update("attempts", gorm.Expr("attempts + 1"))
		utils.WriteError(w, http.StatusBadRequest, "Incorrect verification code")
		return
	}

	if err := database.DB.Model(otp).Update("verified", true).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Code verified, you may now reset your password"})
}

type ResetPasswordRequest struct {
	Email                string `json:"email" validate:"required,email"`
	Code                 string `json:"code" validate:"required"`
	Password             string `json:"password" validate:"required,pwdmin"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// ForgotPasswordResetPasswordHandler sets a new password after a verified OTP.
// The code row is deleted once the password is changed.
func ForgotPasswordResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	otp, ok := liveOtp(w, req.Email)
	if !ok {
		return
	}
	if !otp.Verified {
		utils.WriteError(w, http.StatusBadRequest, "Verification code has not been verified")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(strings.TrimSpace(req.Code))); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Incorrect verification code")
		return
	}

	db := database.DB

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}
	if err := db.Model(&user).Update("password", string(hashed)).Error; err != nil {
		log.Printf("[forgot-password] password update error for %s: %v", req.Email, err)
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	db.Where("email = ?", req.Email).Delete(&models.Otp{})

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Password updated, please log in"})
}

// liveOtp loads the current non-expired code for an email, writing the error
// response itself when there is none.
func liveOtp(w http.ResponseWriter, email string) (*models.Otp, bool) {
	var otp models.Otp
	err := database.DB.Where("email = ?", email).Order("created_at DESC").First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusBadRequest, "No verification code requested, or it was already used")
			return nil, false
		}
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return nil, false
	}
	if otp.Expired(time.Now()) {
		database.DB.Delete(&otp)
		utils.WriteError(w, http.StatusBadRequest, "Verification code has expired")
		return nil, false
	}
	return &otp, true
}

func generateOTPCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	n := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	return fmt.Sprintf("%06d", n%1000000), nil
}
