package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dhanush217/Movie-review/internal/domain"
	"github.com/dhanush217/Movie-review/pkg/auth"
)

// requireSelf checks that the authenticated user matches the {id} path
// parameter. Profiles and watchlists are owner-only.
func (h *Handler) requireSelf(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := h.authUserID(r)
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "Not authorized, please login")
		return "", false
	}
	if pathID := mux.Vars(r)["id"]; pathID != userID {
		h.respondError(w, r, http.StatusForbidden, "You can only access your own account")
		return "", false
	}
	return userID, true
}

// GetUserProfile handles GET /api/users/{id}.
func (h *Handler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireSelf(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, user)
}

// UpdateUserProfile handles PUT /api/users/{id} as a partial patch.
func (h *Handler) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireSelf(w, r)
	if !ok {
		return
	}

	var req domain.UpdateProfileRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			h.logger.ErrorContext(ctx, "Failed to hash password on profile update", slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Error updating profile")
			return
		}
		user.PasswordHash = hashed
	}

	if err := h.users.Update(ctx, user); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "User profile updated", slog.String("userID", userID))
	h.respondJSON(w, r, http.StatusOK, user)
}

// GetWatchlist handles GET /api/users/{id}/watchlist.
func (h *Handler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireSelf(w, r)
	if !ok {
		return
	}

	items, err := h.watchlist.List(ctx, userID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, items)
}

// AddToWatchlist handles POST /api/users/{id}/watchlist.
func (h *Handler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireSelf(w, r)
	if !ok {
		return
	}

	var req struct {
		MovieID string `json:"movieId" validate:"required"`
	}
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "movieId is required")
		return
	}

	if err := h.watchlist.Add(ctx, userID, req.MovieID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, map[string]string{"message": "Movie added to watchlist"})
}

// RemoveFromWatchlist handles DELETE /api/users/{id}/watchlist/{movieId}.
// Removing an absent entry succeeds.
func (h *Handler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireSelf(w, r)
	if !ok {
		return
	}
	movieID := mux.Vars(r)["movieId"]

	if err := h.watchlist.Remove(ctx, userID, movieID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, map[string]string{"message": "Movie removed from watchlist"})
}
