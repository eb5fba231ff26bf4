package routes

import (
	"net/http"

	"github.com/Amolika28-Kale/dubaip2p-sub000/controllers/admins"
	"github.com/Amolika28-Kale/dubaip2p-sub000/controllers/exchange"
	"github.com/Amolika28-Kale/dubaip2p-sub000/middleware"

	"github.com/gorilla/mux"
)

// SetAdminRoutes registers the admin surface. Every route re-checks the admin
// flag from the database on each request.
func SetAdminRoutes(api *mux.Router, ex *exchange.Controller) {
	adminRouter := api.PathPrefix("/exchange/admin").Subrouter()
	adminRouter.Use(middleware.AdminAuthMiddleware)

	// Trade review queue
	adminRouter.Handle("/list", http.HandlerFunc(admins.GetTrades)).Methods(http.MethodGet)
	adminRouter.Handle("/stats", http.HandlerFunc(admins.GetDeskStats)).Methods(http.MethodGet)
	adminRouter.Handle("/release", http.HandlerFunc(admins.ReleaseTrade)).Methods(http.MethodPost)
	adminRouter.Handle("/reject", http.HandlerFunc(admins.RejectTrade)).Methods(http.MethodPost)

	// Desk settings
	adminRouter.Handle("/rate", http.HandlerFunc(ex.AdminSetRate)).Methods(http.MethodPost)
	adminRouter.Handle("/operator", http.HandlerFunc(ex.AdminSetOperator)).Methods(http.MethodPost)
	adminRouter.Handle("/payment-details", http.HandlerFunc(ex.AdminUpsertPaymentDetail)).Methods(http.MethodPost)

	// Reserves write sits outside the /admin prefix but behind the same guard
	api.Handle("/exchange/reserves", middleware.AdminAuthMiddleware(http.HandlerFunc(ex.AdminSetReserves))).Methods(http.MethodPost)

	// User management
	adminRouter.Handle("/users", http.HandlerFunc(admins.GetUsers)).Methods(http.MethodGet)
	api.Handle("/auth/list", middleware.AdminAuthMiddleware(http.HandlerFunc(admins.GetUsers))).Methods(http.MethodGet)
}
