package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dhanush217/Movie-review/internal/service"
	"github.com/dhanush217/Movie-review/internal/store"
	"github.com/dhanush217/Movie-review/pkg/auth"
)

// Handler carries the HTTP dependencies for all routes.
type Handler struct {
	catalog      *service.CatalogService
	reviewSvc    *service.ReviewService
	watchlist    *service.WatchlistService
	users        store.UserStore
	logger       *slog.Logger
	validator    *validator.Validate
	tokenManager auth.TokenManager
	production   bool
}

func NewHandler(
	catalog *service.CatalogService,
	reviewSvc *service.ReviewService,
	watchlist *service.WatchlistService,
	users store.UserStore,
	logger *slog.Logger,
	v *validator.Validate,
	tm auth.TokenManager,
	production bool,
) *Handler {
	return &Handler{
		catalog:      catalog,
		reviewSvc:    reviewSvc,
		watchlist:    watchlist,
		users:        users,
		logger:       logger,
		validator:    v,
		tokenManager: tm,
		production:   production,
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"message": message})
}

// respondServiceError maps domain and store errors onto the HTTP error
// taxonomy. Unexpected failures return a generic message in production;
// full detail is included in development.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *service.ValidationError
	var dupErr *service.DuplicateReviewError

	switch {
	case errors.As(err, &dupErr):
		h.respondJSON(w, r, http.StatusBadRequest, map[string]interface{}{
			"message":        "You have already reviewed this movie. You can update your existing review.",
			"existingReview": dupErr.Existing,
		})
	case errors.As(err, &vErr):
		h.respondJSON(w, r, http.StatusBadRequest, map[string]interface{}{
			"message": vErr.Message,
			"field":   vErr.Field,
			"detail":  vErr.Detail,
		})
	case errors.Is(err, service.ErrNotReviewOwner):
		h.respondError(w, r, http.StatusForbidden, "You can only modify your own reviews")
	case errors.Is(err, store.ErrMovieNotFound):
		h.respondError(w, r, http.StatusNotFound, "Movie not found")
	case errors.Is(err, store.ErrReviewNotFound):
		h.respondError(w, r, http.StatusNotFound, "Review not found")
	case errors.Is(err, store.ErrUserNotFound):
		h.respondError(w, r, http.StatusNotFound, "User not found")
	case errors.Is(err, store.ErrMovieAlreadyExists):
		h.respondError(w, r, http.StatusBadRequest, "Movie with this title already exists")
	case errors.Is(err, store.ErrAlreadyInWatchlist):
		h.respondError(w, r, http.StatusBadRequest, "Movie already in watchlist")
	case errors.Is(err, store.ErrUserAlreadyExists):
		h.respondError(w, r, http.StatusConflict, "User with this email or username already exists")
	default:
		h.logger.ErrorContext(r.Context(), "Unhandled service error",
			slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		if h.production {
			h.respondError(w, r, http.StatusInternalServerError, "Internal server error")
		} else {
			h.respondError(w, r, http.StatusInternalServerError, "Internal server error: "+err.Error())
		}
	}
}

// decodeJSON decodes the request body, rejecting malformed payloads.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}
