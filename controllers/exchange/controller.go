package exchange

import (
	"github.com/Amolika28-Kale/dubaip2p-sub000/rates"

	"gorm.io/gorm"
)

// Controller serves the trade lifecycle and the public desk endpoints. The
// rate service is injected so handlers and tests share one cache.
type Controller struct {
	DB    *gorm.DB
	Rates *rates.Service
}

func NewController(db *gorm.DB, rateSvc *rates.Service) *Controller {
	return &Controller{DB: db, Rates: rateSvc}
}
