package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dhanush217/Movie-review/internal/domain"
)

// CreateReview handles POST /api/movies/{id}/reviews. Every mutation
// response includes the refreshed movie aggregate.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	movieID := mux.Vars(r)["id"]

	userID, ok := h.authUserID(r)
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	var req domain.CreateReviewRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	review, stats, err := h.reviewSvc.CreateReview(ctx, movieID, userID, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusCreated, map[string]interface{}{
		"message":    "Review added successfully",
		"review":     review,
		"movieStats": stats,
	})
}

// UpdateReview handles PUT /api/movies/{id}/reviews/{reviewId} as a partial
// patch of the caller's own review.
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	movieID := vars["id"]
	reviewID := vars["reviewId"]

	userID, ok := h.authUserID(r)
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	var patch domain.UpdateReviewRequest
	if !h.decodeJSON(w, r, &patch) {
		return
	}

	review, stats, err := h.reviewSvc.UpdateReview(ctx, movieID, reviewID, userID, patch)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"message":    "Review updated successfully",
		"review":     review,
		"movieStats": stats,
	})
}

// DeleteReview handles DELETE /api/movies/{id}/reviews/{reviewId}.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	movieID := vars["id"]
	reviewID := vars["reviewId"]

	userID, ok := h.authUserID(r)
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	stats, err := h.reviewSvc.DeleteReview(ctx, movieID, reviewID, userID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"message":    "Review deleted successfully",
		"movieStats": stats,
	})
}
