package exchange

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Amolika28-Kale/dubaip2p-sub000/models"
	"github.com/Amolika28-Kale/dubaip2p-sub000/rates"
	"github.com/Amolika28-Kale/dubaip2p-sub000/utils"

	"gorm.io/gorm"
)

// GetRate returns the current INR-per-USDT rate.
func (c *Controller) GetRate(w http.ResponseWriter, r *http.Request) {
	rate, err := c.Rates.GetRate(r.Context())
	if err != nil {
		if errors.Is(err, rates.ErrRateUnavailable) {
			utils.WriteError(w, http.StatusServiceUnavailable, "Exchange rate is temporarily unavailable")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"rate": rate},
	})
}

// GetLatest returns the rate plus freshness metadata for the ticker widget.
func (c *Controller) GetLatest(w http.ResponseWriter, r *http.Request) {
	rate, err := c.Rates.GetRate(r.Context())
	if err != nil {
		if errors.Is(err, rates.ErrRateUnavailable) {
			utils.WriteError(w, http.StatusServiceUnavailable, "Exchange rate is temporarily unavailable")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	data := map[string]interface{}{
		"rate":        rate,
		"ttl_seconds": int(c.Rates.TTL().Seconds()),
	}
	if at := c.Rates.LastFetchedAt(); !at.IsZero() {
		data["fetched_at"] = at.UTC().Format(time.RFC3339)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: data})
}

// GetReserves returns the desk's liquidity per payment method.
func (c *Controller) GetReserves(w http.ResponseWriter, r *http.Request) {
	raw, err := models.GetSetting(c.DB, models.SettingReserves)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	reserves := map[string]float64{}
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &reserves)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: reserves})
}

// GetOperator reports whether the desk operator is currently online.
func (c *Controller) GetOperator(w http.ResponseWriter, r *http.Request) {
	online, err := models.GetSettingBool(c.DB, models.SettingOperatorOnline)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"online": online},
	})
}

// GetPaymentDetails lists the active payout instructions per method.
func (c *Controller) GetPaymentDetails(w http.ResponseWriter, r *http.Request) {
	details := make([]models.PaymentDetail, 0)
	if err := c.DB.Where("active = ?", true).Order("method ASC").Find(&details).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: details})
}
