package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade statuses. PENDING and PAID are the only states an admin action may
// leave; COMPLETED and CANCELLED are terminal.
const (
	TradeStatusPending   = "PENDING"
	TradeStatusPaid      = "PAID"
	TradeStatusCompleted = "COMPLETED"
	TradeStatusCancelled = "CANCELLED"
)

const (
	TradeDirectionBuy  = "BUY"
	TradeDirectionSell = "SELL"
)

type Trade struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;index" json:"user_id"`
	User            *User      `gorm:"foreignKey:UserID" json:"-"`
	Reference       string     `gorm:"type:varchar(191);uniqueIndex;not null" json:"reference"`
	Direction       string     `gorm:"type:enum('BUY','SELL');not null" json:"direction"`
	SendMethod      string     `gorm:"size:50;not null" json:"send_method"`
	ReceiveMethod   string     `gorm:"size:50;not null" json:"receive_method"`
	FiatAmount      float64    `gorm:"type:decimal(15,2);not null" json:"fiat_amount"`
	CryptoAmount    float64    `gorm:"type:decimal(18,6);not null" json:"crypto_amount"`
	Rate            float64    `gorm:"type:decimal(15,6);not null" json:"rate"`
	WalletAddress   string     `gorm:"size:191;not null" json:"wallet_address"`
	ScreenshotPath  *string    `gorm:"size:255" json:"screenshot_path,omitempty"`
	Status          string     `gorm:"type:enum('PENDING','PAID','COMPLETED','CANCELLED');default:'PENDING';index" json:"status"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	TxID            *string    `gorm:"size:191" json:"txid,omitempty"`
	RejectionReason *string    `gorm:"size:255" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"-"`
}

func (Trade) TableName() string {
	return "trades"
}

// tradeTransitions is the full status graph. Cancellation is the only exit
// from PAID besides release; nothing leaves a terminal state.
var tradeTransitions = map[string][]string{
	TradeStatusPending: {TradeStatusPaid, TradeStatusCancelled},
	TradeStatusPaid:    {TradeStatusCompleted, TradeStatusCancelled},
}

// CanTransition reports whether moving from to next is a legal status change.
func CanTransition(from, next string) bool {
	for _, s := range tradeTransitions[from] {
		if s == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether status admits no further transitions.
func IsTerminal(status string) bool {
	return len(tradeTransitions[status]) == 0
}

// CryptoAmount computes the USDT amount for a fiat amount at the given rate,
// rounded to 6 decimal places. The result is fixed at trade creation and never
// recomputed afterwards.
func CryptoAmount(fiatAmount, rate float64) float64 {
	if rate == 0 {
		return 0
	}
	v, _ := decimal.NewFromFloat(fiatAmount).
		DivRound(decimal.NewFromFloat(rate), 6).
		Float64()
	return v
}
