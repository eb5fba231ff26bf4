package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/Amolika28-Kale/dubaip2p-sub000/database"
	"github.com/Amolika28-Kale/dubaip2p-sub000/middleware"
	"github.com/Amolika28-Kale/dubaip2p-sub000/models"
	"github.com/Amolika28-Kale/dubaip2p-sub000/utils"
)

// ListReviewsHandler returns all reviews, newest first. Public.
func ListReviewsHandler(w http.ResponseWriter, r *http.Request) {
	reviews := make([]models.Review, 0)
	if err := database.DB.Order("created_at DESC").Find(&reviews).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: reviews})
}

type CreateReviewRequest struct {
	Text   string `json:"text" validate:"required"`
	Rating int    `json:"rating"`
}

// CreateReviewHandler stores a review under the caller's current username.
// The username is denormalized on purpose: a later rename does not rewrite
// published reviews.
func CreateReviewHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateReviewRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		utils.WriteError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	review := models.Review{
		UserID:   user.ID,
		Username: user.Username,
		Text:     strings.TrimSpace(req.Text),
		Rating:   req.Rating,
	}
	if err := database.DB.Create(&review).Error; err != nil {
		log.Printf("[review] DB Create error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save review")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Review published", Data: review})
}
