package routes

import (
	"net/http"
	"time"

	"github.com/Amolika28-Kale/dubaip2p-sub000/controllers"
	"github.com/Amolika28-Kale/dubaip2p-sub000/controllers/auth"
	"github.com/Amolika28-Kale/dubaip2p-sub000/controllers/exchange"
	"github.com/Amolika28-Kale/dubaip2p-sub000/middleware"

	"github.com/gorilla/mux"
)

// ExchangeRoutes registers the public and user-facing endpoints.
func ExchangeRoutes(api *mux.Router, ex *exchange.Controller) {
	// Auth endpoints get a tighter window than the rest of the API.
	authLimiter := middleware.NewIPRateLimiter(30, 5*time.Minute)
	// OTP mail is the expensive path; keep it strict.
	otpLimiter := middleware.NewIPRateLimiter(5, 10*time.Minute)
	publicLimiter := middleware.NewIPRateLimiter(300, 5*time.Minute)

	// Accounts
	api.Handle("/auth/signup", authLimiter.Middleware(http.HandlerFunc(auth.SignupHandler))).Methods(http.MethodPost)
	api.Handle("/auth/login", authLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/auth/logout", middleware.AuthMiddleware(http.HandlerFunc(auth.LogoutHandler))).Methods(http.MethodPost)
	api.Handle("/auth/me", middleware.AuthMiddleware(http.HandlerFunc(auth.MeHandler))).Methods(http.MethodGet)
	api.Handle("/auth/me", middleware.AuthMiddleware(http.HandlerFunc(auth.UpdateMeHandler))).Methods(http.MethodPut)

	// Forgot password
	api.Handle("/auth/forgot-password/request-otp", otpLimiter.Middleware(http.HandlerFunc(auth.ForgotPasswordRequestOTPHandler))).Methods(http.MethodPost)
	api.Handle("/auth/forgot-password/verify-otp", authLimiter.Middleware(http.HandlerFunc(auth.ForgotPasswordVerifyOTPHandler))).Methods(http.MethodPost)
	api.Handle("/auth/forgot-password/reset-password", authLimiter.Middleware(http.HandlerFunc(auth.ForgotPasswordResetPasswordHandler))).Methods(http.MethodPost)

	// Trades
	api.Handle("/exchange/initiate", middleware.AuthMiddleware(http.HandlerFunc(ex.Initiate))).Methods(http.MethodPost)
	api.Handle("/exchange/confirm-payment", middleware.AuthMiddleware(http.HandlerFunc(ex.ConfirmPayment))).Methods(http.MethodPost)
	api.Handle("/exchange/my", middleware.AuthMiddleware(http.HandlerFunc(ex.MyTrades))).Methods(http.MethodGet)
	api.Handle("/exchange/trade/{id}", publicLimiter.Middleware(http.HandlerFunc(ex.GetTrade))).Methods(http.MethodGet)

	// Public desk info
	api.Handle("/exchange/rate", publicLimiter.Middleware(http.HandlerFunc(ex.GetRate))).Methods(http.MethodGet)
	api.Handle("/exchange/latest", publicLimiter.Middleware(http.HandlerFunc(ex.GetLatest))).Methods(http.MethodGet)
	api.Handle("/exchange/reserves", publicLimiter.Middleware(http.HandlerFunc(ex.GetReserves))).Methods(http.MethodGet)
	api.Handle("/exchange/operator", publicLimiter.Middleware(http.HandlerFunc(ex.GetOperator))).Methods(http.MethodGet)
	api.Handle("/exchange/payment-details", publicLimiter.Middleware(http.HandlerFunc(ex.GetPaymentDetails))).Methods(http.MethodGet)

	// Reviews
	api.Handle("/review", publicLimiter.Middleware(http.HandlerFunc(controllers.ListReviewsHandler))).Methods(http.MethodGet)
	api.Handle("/review", middleware.AuthMiddleware(http.HandlerFunc(controllers.CreateReviewHandler))).Methods(http.MethodPost)
}
