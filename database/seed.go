package database

import (
	"encoding/json"
	"errors"
	"log"
	"os"

	"github.com/Amolika28-Kale/dubaip2p-sub000/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed bootstraps a fresh database: the admin account (from ADMIN_EMAIL and
// ADMIN_BOOTSTRAP_TOKEN), default settings and the supported payment methods.
// Idempotent; safe to run on every boot behind SEED_ON_START.
func Seed(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	if err := seedSettings(db); err != nil {
		return err
	}
	return seedPaymentMethods(db)
}

func seedAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	token := os.Getenv("ADMIN_BOOTSTRAP_TOKEN")
	if email == "" || token == "" {
		log.Println("[seed] ADMIN_EMAIL / ADMIN_BOOTSTRAP_TOKEN not set, skipping admin bootstrap")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Username: "admin",
		Email:    email,
		Password: string(hashed),
		IsAdmin:  true,
		ReffCode: "ADMIN000",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("[seed] created admin account %s", email)
	return nil
}

func seedSettings(db *gorm.DB) error {
	defaults := map[string]string{
		models.SettingExchangeRate:   os.Getenv("DEFAULT_RATE"),
		models.SettingOperatorOnline: "true",
		models.SettingReserves:       `{"UPI":0,"BANK":0,"USDT-TRC20":0,"USDT-BEP20":0}`,
	}
	if defaults[models.SettingExchangeRate] == "" {
		defaults[models.SettingExchangeRate] = "83.0"
	}
	for key, value := range defaults {
		var s models.Setting
		err := db.Where("`key` = ?", key).First(&s).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := models.SetSetting(db, key, value); err != nil {
			return err
		}
	}
	return nil
}

func seedPaymentMethods(db *gorm.DB) error {
	methods := []string{"UPI", "BANK", "USDT-TRC20", "USDT-BEP20"}
	for _, m := range methods {
		var pd models.PaymentDetail
		err := db.Where("method = ?", m).First(&pd).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		empty, _ := json.Marshal(map[string]string{})
		// inactive until the admin fills in real payout instructions
		pd = models.PaymentDetail{Method: m, Details: string(empty), Active: false}
		if err := db.Create(&pd).Error; err != nil {
			return err
		}
	}
	return nil
}
