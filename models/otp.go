package models

import "time"

// Otp is a short-lived one-time code tied to an email. Rows past ExpiresAt are
// treated as absent and purged opportunistically on the next request for the
// same email.
type Otp struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Email     string    `gorm:"size:191;not null;index" json:"email"`
	CodeHash  string    `gorm:"size:255;not null" json:"-"`
	Attempts  int       `gorm:"default:0" json:"-"`
	Verified  bool      `gorm:"default:false" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"-"`
	CreatedAt time.Time `json:"-"`
}

func (Otp) TableName() string {
	return "otps"
}

func (o *Otp) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
