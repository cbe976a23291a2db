package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/forgo/camp/internal/model"
	"github.com/forgo/camp/internal/service"
)

// ReviewService defines the review pipeline operations
type ReviewService interface {
	AddReview(ctx context.Context, campgroundID string, form model.ReviewForm) error
	DeleteReview(ctx context.Context, campgroundID, reviewID string) error
}

// ReviewHandler handles the nested review routes
type ReviewHandler struct {
	service ReviewService
	pages   *Pages
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service ReviewService, pages *Pages) *ReviewHandler {
	return &ReviewHandler{service: service, pages: pages}
}

// Create handles POST /campgrounds/{id}/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	campgroundID := r.PathValue("id")

	form := model.ReviewForm{
		Body:   r.PostFormValue("body"),
		Rating: r.PostFormValue("rating"),
	}

	if err := h.service.AddReview(r.Context(), campgroundID, form); err != nil {
		if errors.Is(err, service.ErrCampgroundNotFound) {
			h.pages.Flash(r, model.FlashError, "Campground not found.")
			h.pages.Redirect(w, r, "/campgrounds")
			return
		}
		h.pages.Error(w, r, err)
		return
	}

	h.pages.Flash(r, model.FlashSuccess, "Your review is added.")
	h.pages.Redirect(w, r, "/campgrounds/"+campgroundID)
}

// Delete handles DELETE /campgrounds/{id}/reviews/{reviewId}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	campgroundID := r.PathValue("id")

	if err := h.service.DeleteReview(r.Context(), campgroundID, r.PathValue("reviewId")); err != nil {
		h.pages.Error(w, r, err)
		return
	}

	h.pages.Flash(r, model.FlashSuccess, "Successfully deleted the review.")
	h.pages.Redirect(w, r, "/campgrounds/"+campgroundID)
}
