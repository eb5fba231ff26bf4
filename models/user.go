package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:100;not null" json:"username"`
	Email     string    `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Phone     *string   `gorm:"size:20;uniqueIndex" json:"phone,omitempty"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	Balance   float64   `gorm:"type:decimal(15,2);default:0" json:"balance"`
	ReffCode  string    `gorm:"size:20;uniqueIndex;not null" json:"reff_code"`
	ReffBy    *uint     `gorm:"column:reff_by" json:"reff_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}
