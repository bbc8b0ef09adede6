package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dhanush217/Movie-review/internal/domain"
)

// ContextKey is the type for request context keys.
type ContextKey string

const (
	// UserIDKey holds the authenticated user's id in the request context.
	UserIDKey ContextKey = "userID"
	// UserRoleKey holds the authenticated user's role in the request context.
	UserRoleKey ContextKey = "userRole"
)

// AuthMiddleware verifies the bearer token from the Authorization header and
// places the verified identity into the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.respondError(w, r, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			h.logger.WarnContext(r.Context(), "Invalid Authorization header format")
			h.respondError(w, r, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}

		claims, err := h.tokenManager.Validate(parts[1])
		if err != nil {
			h.logger.WarnContext(r.Context(), "Invalid or expired token", slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates catalog mutations. It must run after AuthMiddleware.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(UserRoleKey).(string)
		if role != domain.RoleAdmin {
			h.respondError(w, r, http.StatusForbidden, "Not authorized as an admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authUserID extracts the authenticated user id placed by AuthMiddleware.
func (h *Handler) authUserID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

// RequestLogging logs method, path, status, and duration for every request.
func RequestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.InfoContext(r.Context(), "HTTP request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
