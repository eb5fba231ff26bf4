package exchange

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Amolika28-Kale/dubaip2p-sub000/middleware"
	"github.com/Amolika28-Kale/dubaip2p-sub000/models"
	"github.com/Amolika28-Kale/dubaip2p-sub000/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SetRateRequest struct {
	Rate float64 `json:"rate" validate:"required"`
}

// AdminSetRate overrides the exchange rate manually. The override lands in
// both the cache and the durable setting, same as a successful fetch.
func (c *Controller) AdminSetRate(w http.ResponseWriter, r *http.Request) {
	var req SetRateRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Rate <= 0 {
		utils.WriteError(w, http.StatusBadRequest, "Rate must be greater than zero")
		return
	}

	c.Rates.SetRate(req.Rate)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Rate updated",
		Data:    map[string]interface{}{"rate": req.Rate},
	})
}

type SetOperatorRequest struct {
	Online *bool `json:"online"`
}

func (c *Controller) AdminSetOperator(w http.ResponseWriter, r *http.Request) {
	var req SetOperatorRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Online == nil {
		utils.WriteError(w, http.StatusBadRequest, "online is required")
		return
	}

	value := "false"
	if *req.Online {
		value = "true"
	}
	if err := models.SetSetting(c.DB, models.SettingOperatorOnline, value); err != nil {
		log.Printf("[exchange] operator setting write error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Operator status updated",
		Data:    map[string]interface{}{"online": *req.Online},
	})
}

// AdminSetReserves replaces the per-method liquidity figures wholesale.
func (c *Controller) AdminSetReserves(w http.ResponseWriter, r *http.Request) {
	var reserves map[string]float64
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&reserves); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	for method, amount := range reserves {
		if amount < 0 {
			utils.WriteError(w, http.StatusBadRequest, "Reserve for "+method+" cannot be negative")
			return
		}
	}

	raw, err := json.Marshal(reserves)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if err := models.SetSetting(c.DB, models.SettingReserves, string(raw)); err != nil {
		log.Printf("[exchange] reserves setting write error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Reserves updated", Data: reserves})
}

type PaymentDetailRequest struct {
	Method  string          `json:"method" validate:"required"`
	Details json.RawMessage `json:"details"`
	Active  *bool           `json:"active"`
}

// AdminUpsertPaymentDetail creates or updates the payout instructions for one
// method. Details is stored as the raw JSON object the admin submitted.
func (c *Controller) AdminUpsertPaymentDetail(w http.ResponseWriter, r *http.Request) {
	var req PaymentDetailRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	method := strings.ToUpper(strings.TrimSpace(req.Method))
	switch method {
	case "UPI", "BANK", "USDT-TRC20", "USDT-BEP20":
	default:
		utils.WriteError(w, http.StatusBadRequest, "Unknown payment method")
		return
	}

	pd := models.PaymentDetail{Method: method, Details: "{}", Active: true}
	if len(req.Details) > 0 {
		pd.Details = string(req.Details)
	}
	if req.Active != nil {
		pd.Active = *req.Active
	}

	err := c.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "method"}},
		DoUpdates: clause.AssignmentColumns([]string{"details", "active", "updated_at"}),
	}).Create(&pd).Error
	if err != nil {
		log.Printf("[exchange] payment detail upsert error for %s: %v", method, err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	var saved models.PaymentDetail
	if err := c.DB.Where("method = ?", method).First(&saved).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Payment details saved", Data: saved})
}
