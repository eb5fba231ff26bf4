package admins

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Amolika28-Kale/dubaip2p-sub000/database"
	"github.com/Amolika28-Kale/dubaip2p-sub000/middleware"
	"github.com/Amolika28-Kale/dubaip2p-sub000/models"
	"github.com/Amolika28-Kale/dubaip2p-sub000/utils"

	"gorm.io/gorm"
)

// TradeWithUser is a trade row enriched with a snapshot of its owner for the
// admin review queue.
type TradeWithUser struct {
	models.Trade
	UserEmail    string    `json:"user_email"`
	UserName     string    `json:"user_name"`
	UserBalance  float64   `json:"user_balance"`
	UserReffCode string    `json:"user_reff_code"`
	UserJoinedAt time.Time `json:"user_joined_at"`
}

// GetTrades lists every trade for review: PAID rows first (those are waiting
// on an admin), then newest first. Optional ?status= filter.
func GetTrades(w http.ResponseWriter, r *http.Request) {
	status := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status")))

	db := database.DB
	query := db.Table("trades").
		Select("trades.*, users.email as user_email, users.username as user_name, " +
			"users.balance as user_balance, users.reff_code as user_reff_code, users.created_at as user_joined_at").
		Joins("JOIN users ON trades.user_id = users.id")

	if status != "" {
		query = query.Where("trades.status = ?", status)
	}

	var trades []TradeWithUser
	err := query.
		Order("CASE WHEN trades.status = 'PAID' THEN 0 ELSE 1 END, trades.created_at DESC").
		Find(&trades).Error
	if err != nil {
		log.Printf("[admin] trade list error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch trades")
		return
	}
	if trades == nil {
		trades = make([]TradeWithUser, 0)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: trades})
}

type ReleaseRequest struct {
	Reference string `json:"reference" validate:"required"`
	TxID      string `json:"txid" validate:"required"`
}

// ReleaseTrade settles a PAID trade: records the on-chain transaction id and
// marks it COMPLETED. The guard is the conditional update itself; two admins
// clicking release at once means exactly one wins and the other gets 400.
func ReleaseTrade(w http.ResponseWriter, r *http.Request) {
	admin, _ := middleware.CurrentUser(r)

	var req ReleaseRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	db := database.DB

	var trade models.Trade
	if err := db.Where("reference = ?", req.Reference).First(&trade).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Trade not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	now := time.Now()
	res := db.Model(&models.Trade{}).
		Where("id = ? AND status = ?", trade.ID, models.TradeStatusPaid).
		Updates(map[string]interface{}{
			"status":      models.TradeStatusCompleted,
			"tx_id":       req.TxID,
			"reviewed_at": now,
		})
	if res.Error != nil {
		log.Printf("[admin] release error for %s: %v", req.Reference, res.Error)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Trade is not in PAID status")
		return
	}

	log.Printf("[admin] trade %s released by admin %d (txid %s)", req.Reference, admin.ID, req.TxID)

	trade.Status = models.TradeStatusCompleted
	trade.TxID = &req.TxID
	trade.ReviewedAt = &now

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Trade released", Data: trade})
}

type RejectRequest struct {
	Reference string `json:"reference" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
}

// RejectTrade cancels a PENDING or PAID trade with a reason. Terminal trades
// stay untouched.
func RejectTrade(w http.ResponseWriter, r *http.Request) {
	admin, _ := middleware.CurrentUser(r)

	var req RejectRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	db := database.DB

	var trade models.Trade
	if err := db.Where("reference = ?", req.Reference).First(&trade).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Trade not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	now := time.Now()
	res := db.Model(&models.Trade{}).
		Where("id = ? AND status IN ?", trade.ID, []string{models.TradeStatusPending, models.TradeStatusPaid}).
		Updates(map[string]interface{}{
			"status":           models.TradeStatusCancelled,
			"rejection_reason": req.Reason,
			"reviewed_at":      now,
		})
	if res.Error != nil {
		log.Printf("[admin] reject error for %s: %v", req.Reference, res.Error)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Trade is already settled or cancelled")
		return
	}

	log.Printf("[admin] trade %s rejected by admin %d: %s", req.Reference, admin.ID, req.Reason)

	trade.Status = models.TradeStatusCancelled
	trade.RejectionReason = &req.Reason
	trade.ReviewedAt = &now

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Trade rejected", Data: trade})
}
