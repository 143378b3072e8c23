package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"contacthub/internal/platform/middleware"
	"contacthub/internal/transport/http/shared"
	"contacthub/internal/users/models"
	"contacthub/internal/users/service"
	dErrors "contacthub/pkg/domain-errors"
	"contacthub/pkg/requestcontext"
)

// Handler exposes the user endpoints: register, login, current, logout.
type Handler struct {
	logger     *slog.Logger
	users      *service.Service
	validator  middleware.TokenValidator
	revocation middleware.RevocationChecker
}

// New creates a user Handler.
func New(users *service.Service, validator middleware.TokenValidator, revocation middleware.RevocationChecker, logger *slog.Logger) *Handler {
	return &Handler{
		logger:     logger,
		users:      users,
		validator:  validator,
		revocation: revocation,
	}
}

// Routes returns the router mounted at /api/users.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.revocation, h.logger))
		r.Get("/current", h.handleCurrent)
		r.Post("/logout", h.handleLogout)
	})
	return r
}

type registerResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	user, err := h.users.Register(ctx, &req)
	if err != nil {
		h.logFailure(r, "registration failed", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, registerResponse{ID: user.ID, Email: user.Email})
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	token, err := h.users.Login(ctx, &req)
	if err != nil {
		h.logFailure(r, "login failed", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, loginResponse{Token: token})
}

type currentUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// handleCurrent answers from the verified claims alone; request
// authentication never touches the database.
func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, currentUserResponse{
		ID:       claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims := middleware.GetClaims(ctx)
	if claims == nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	remaining := time.Duration(0)
	if claims.ExpiresAt != nil {
		remaining = time.Until(claims.ExpiresAt.Time)
	}
	if err := h.users.Logout(ctx, requestcontext.TokenID(ctx), remaining); err != nil {
		h.logFailure(r, "logout failed", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "successfully logged out"})
}

func (h *Handler) logFailure(r *http.Request, msg string, err error) {
	h.logger.WarnContext(r.Context(), msg,
		"error", err.Error(),
		"request_id", requestcontext.RequestID(r.Context()),
	)
}
