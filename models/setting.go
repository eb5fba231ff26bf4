package models

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Well-known setting keys.
const (
	SettingExchangeRate   = "exchange_rate"
	SettingReserves       = "reserves"
	SettingOperatorOnline = "operator_online"
)

// Setting is a generic key/value row. Each write overwrites; no history kept.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

func GetSetting(db *gorm.DB, key string) (string, error) {
	var s Setting
	if err := db.Where("`key` = ?", key).Take(&s).Error; err != nil {
		return "", err
	}
	return s.Value, nil
}

// SetSetting upserts a setting value (last write wins).
func SetSetting(db *gorm.DB, key, value string) error {
	s := Setting{Key: key, Value: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&s).Error
}

func GetSettingFloat(db *gorm.DB, key string) (float64, error) {
	v, err := GetSetting(db, key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New("setting " + key + " is not numeric")
	}
	return f, nil
}

func GetSettingBool(db *gorm.DB, key string) (bool, error) {
	v, err := GetSetting(db, key)
	if err != nil {
		return false, err
	}
	return v == "true" || v == "1", nil
}
