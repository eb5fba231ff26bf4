package exchange

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Amolika28-Kale/dubaip2p-sub000/middleware"
	"github.com/Amolika28-Kale/dubaip2p-sub000/models"
	"github.com/Amolika28-Kale/dubaip2p-sub000/rates"
	"github.com/Amolika28-Kale/dubaip2p-sub000/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type InitiateRequest struct {
	Direction     string  `json:"direction" validate:"required"`
	SendMethod    string  `json:"send_method" validate:"required"`
	ReceiveMethod string  `json:"receive_method" validate:"required"`
	FiatAmount    float64 `json:"fiat_amount" validate:"required"`
	WalletAddress string  `json:"wallet_address" validate:"required,walletok"`
}

// Initiate opens a new trade. The rate is snapshotted now; the crypto amount
// is fixed at creation and never recomputed.
func (c *Controller) Initiate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req InitiateRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	req.Direction = strings.ToUpper(strings.TrimSpace(req.Direction))
	if req.Direction != models.TradeDirectionBuy && req.Direction != models.TradeDirectionSell {
		utils.WriteError(w, http.StatusBadRequest, "Direction must be BUY or SELL")
		return
	}
	if req.FiatAmount <= 0 {
		utils.WriteError(w, http.StatusBadRequest, "Amount must be greater than zero")
		return
	}

	rate, err := c.Rates.GetRate(r.Context())
	if err != nil {
		if errors.Is(err, rates.ErrRateUnavailable) {
			utils.WriteError(w, http.StatusServiceUnavailable, "Exchange rate is temporarily unavailable, please try again shortly")
			return
		}
		log.Printf("[exchange] rate lookup failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	// The crypto amount is derived from the fiat amount as stored, so the
	// persisted pair always satisfies crypto == round(fiat/rate, 6).
	fiatAmount := utils.RoundFloat(req.FiatAmount, 2)

	trade := models.Trade{
		UserID:        user.ID,
		Reference:     utils.GenerateTradeRef(user.ID),
		Direction:     req.Direction,
		SendMethod:    strings.TrimSpace(req.SendMethod),
		ReceiveMethod: strings.TrimSpace(req.ReceiveMethod),
		FiatAmount:    fiatAmount,
		CryptoAmount:  models.CryptoAmount(fiatAmount, rate),
		Rate:          rate,
		WalletAddress: strings.TrimSpace(req.WalletAddress),
		Status:        models.TradeStatusPending,
	}

	if err := c.DB.Create(&trade).Error; err != nil {
		log.Printf("[exchange] DB Create trade error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to open trade, please try again")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Trade opened", Data: trade})
}

// ConfirmPayment attaches the payment proof and moves the trade PENDING→PAID.
// The status change is a conditional single-row update, so a double submit or
// a concurrent admin rejection loses cleanly.
func (c *Controller) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(utils.MaxScreenshotBytes + 1<<20); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	reference := strings.TrimSpace(r.FormValue("reference"))
	if reference == "" {
		utils.WriteError(w, http.StatusBadRequest, "reference is required")
		return
	}

	file, handler, err := r.FormFile("screenshot")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Payment screenshot is required")
		return
	}
	defer file.Close()
	if err := utils.ValidateScreenshot(handler); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var trade models.Trade
	if err := c.DB.Where("reference = ? AND user_id = ?", reference, user.ID).First(&trade).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Trade not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if trade.Status != models.TradeStatusPending {
		utils.WriteError(w, http.StatusBadRequest, "Trade is not awaiting payment")
		return
	}

	path, err := utils.SaveScreenshot(file, handler, trade.Reference)
	if err != nil {
		log.Printf("[exchange] screenshot save error for %s: %v", trade.Reference, err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to store screenshot, please try again")
		return
	}

	now := time.Now()
	res := c.DB.Model(&models.Trade{}).
		Where("id = ? AND status = ?", trade.ID, models.TradeStatusPending).
		Updates(map[string]interface{}{
			"status":          models.TradeStatusPaid,
			"screenshot_path": path,
			"paid_at":         now,
		})
	if res.Error != nil {
		log.Printf("[exchange] confirm payment update error for %s: %v", trade.Reference, res.Error)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.RowsAffected == 0 {
		// Lost to a concurrent transition (e.g. an admin rejection); the file
		// belongs to no trade now, clean it up.
		if err := utils.DeleteScreenshot(path); err != nil {
			log.Printf("[exchange] orphaned screenshot cleanup failed for %s: %v", trade.Reference, err)
		}
		utils.WriteError(w, http.StatusBadRequest, "Trade is not awaiting payment")
		return
	}

	trade.Status = models.TradeStatusPaid
	trade.ScreenshotPath = &path
	trade.PaidAt = &now

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Payment recorded, awaiting verification", Data: trade})
}

// GetTrade returns one trade by numeric id or reference. Public: the frontend
// polls it for status without a session.
func (c *Controller) GetTrade(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var trade models.Trade
	if err := c.DB.Where("reference = ? OR id = ?", id, id).First(&trade).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Trade not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: trade})
}

// MyTrades lists the caller's trades, newest first.
func (c *Controller) MyTrades(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	trades := make([]models.Trade, 0)
	if err := c.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&trades).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: trades})
}
