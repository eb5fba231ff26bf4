package admins

import (
	"net/http"

	"github.com/Amolika28-Kale/dubaip2p-sub000/database"
	"github.com/Amolika28-Kale/dubaip2p-sub000/models"
	"github.com/Amolika28-Kale/dubaip2p-sub000/utils"
)

type DeskStats struct {
	TotalTrades     int64   `json:"total_trades"`
	ActiveTrades    int64   `json:"active_trades"`
	PaidTrades      int64   `json:"paid_trades"`
	CompletedTrades int64   `json:"completed_trades"`
	Volume24h       float64 `json:"volume_24h"`
	ActiveUsers24h  int64   `json:"active_users_24h"`
	TotalUsers      int64   `json:"total_users"`
}

// GetDeskStats powers the admin dashboard. Volume is fiat (INR) over the
// trailing 24 hours, counted on trade creation.
func GetDeskStats(w http.ResponseWriter, r *http.Request) {
	var stats DeskStats
	db := database.DB

	db.Model(&models.Trade{}).Count(&stats.TotalTrades)
	db.Model(&models.Trade{}).
		Where("status IN ?", []string{models.TradeStatusPending, models.TradeStatusPaid}).
		Count(&stats.ActiveTrades)
	db.Model(&models.Trade{}).Where("status = ?", models.TradeStatusPaid).Count(&stats.PaidTrades)
	db.Model(&models.Trade{}).Where("status = ?", models.TradeStatusCompleted).Count(&stats.CompletedTrades)

	db.Model(&models.Trade{}).
		Where("created_at >= NOW() - INTERVAL 24 HOUR").
		Select("COALESCE(SUM(fiat_amount), 0)").
		Scan(&stats.Volume24h)

	db.Model(&models.Trade{}).
		Where("created_at >= NOW() - INTERVAL 24 HOUR").
		Distinct("user_id").
		Count(&stats.ActiveUsers24h)

	db.Model(&models.User{}).Count(&stats.TotalUsers)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: stats})
}
