package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dhanush217/Movie-review/internal/domain"
	"github.com/dhanush217/Movie-review/internal/store"
	"github.com/dhanush217/Movie-review/pkg/auth"
)

// RegisterUser handles POST /api/auth/register.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.RegisterRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Registration request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to hash password", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Error processing registration")
		return
	}

	now := time.Now().UTC()
	newUser := &domain.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.users.Create(ctx, newUser); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	token, err := h.tokenManager.Generate(newUser.ID, newUser.Role)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to generate token after registration", slog.String("userID", newUser.ID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Registration succeeded but token generation failed")
		return
	}

	h.logger.InfoContext(ctx, "User registered", slog.String("userID", newUser.ID), slog.String("username", newUser.Username))
	h.respondJSON(w, r, http.StatusCreated, domain.LoginResponse{User: newUser, Token: token})
}

// LoginUser handles POST /api/auth/login.
func (h *Handler) LoginUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	user, err := h.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			h.respondError(w, r, http.StatusUnauthorized, "Invalid email or password")
		} else {
			h.respondServiceError(w, r, err)
		}
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		h.logger.WarnContext(ctx, "Invalid password attempt", slog.String("userID", user.ID))
		h.respondError(w, r, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.tokenManager.Generate(user.ID, user.Role)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to generate token", slog.String("userID", user.ID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Login failed")
		return
	}

	h.logger.InfoContext(ctx, "User logged in", slog.String("userID", user.ID))
	h.respondJSON(w, r, http.StatusOK, domain.LoginResponse{User: user, Token: token})
}
