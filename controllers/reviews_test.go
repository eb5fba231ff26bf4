package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Amolika28-Kale/dubaip2p-sub000/models"
	"github.com/Amolika28-Kale/dubaip2p-sub000/utils"
)

func TestCreateReviewRejectsOutOfRangeRating(t *testing.T) {
	for _, rating := range []string{"0", "6", "-1"} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/review", strings.NewReader(`{"text":"great desk","rating":`+rating+`}`))
		r.Header.Set("Content-Type", "application/json")
		user := &models.User{ID: 3, Username: "tester"}
		r = r.WithContext(context.WithValue(r.Context(), utils.UserKey, user))

		CreateReviewHandler(w, r)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("rating %s: expected 400, got %d", rating, w.Code)
		}
	}
}

func TestCreateReviewRequiresAuth(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/review", strings.NewReader(`{"text":"great desk","rating":5}`))
	r.Header.Set("Content-Type", "application/json")

	CreateReviewHandler(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user in context, got %d", w.Code)
	}
}
