package models

import "time"

// PaymentDetail holds admin-configured payout instructions per method. Details
// is a free-form JSON object (UPI id, bank account fields, wallet address...).
type PaymentDetail struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Method    string    `gorm:"type:enum('UPI','BANK','USDT-TRC20','USDT-BEP20');uniqueIndex;not null" json:"method"`
	Details   string    `gorm:"type:text;not null" json:"details"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PaymentDetail) TableName() string {
	return "payment_details"
}
