package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"contacthub/internal/contacts/models"
	"contacthub/internal/contacts/service"
	"contacthub/internal/platform/middleware"
	"contacthub/internal/transport/http/shared"
	dErrors "contacthub/pkg/domain-errors"
	"contacthub/pkg/requestcontext"
)

// Handler exposes the contact CRUD endpoints. Every route requires a valid
// bearer token.
type Handler struct {
	logger     *slog.Logger
	contacts   *service.Service
	validator  middleware.TokenValidator
	revocation middleware.RevocationChecker
}

// New creates a contact Handler.
func New(contacts *service.Service, validator middleware.TokenValidator, revocation middleware.RevocationChecker, logger *slog.Logger) *Handler {
	return &Handler{
		logger:     logger,
		contacts:   contacts,
		validator:  validator,
		revocation: revocation,
	}
}

// Routes returns the router mounted at /api/contacts.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequireAuth(h.validator, h.revocation, h.logger))
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
	return r
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := requestcontext.UserID(ctx)
	if callerID == uuid.Nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	var req models.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	contact, err := h.contacts.Create(ctx, callerID, &req)
	if err != nil {
		h.logFailure(r, "contact creation failed", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, contact)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := requestcontext.UserID(ctx)
	if callerID == uuid.Nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	contacts, err := h.contacts.List(ctx, callerID)
	if err != nil {
		h.logFailure(r, "contact listing failed", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, contacts)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := contactID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	contact, err := h.contacts.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, contact)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := requestcontext.UserID(ctx)
	if callerID == uuid.Nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	id, err := contactID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req models.UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	contact, err := h.contacts.Update(ctx, id, callerID, &req)
	if err != nil {
		h.logFailure(r, "contact update failed", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, contact)
}

type deleteResponse struct {
	Message string          `json:"message"`
	Contact *models.Contact `json:"contact"`
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := requestcontext.UserID(ctx)
	if callerID == uuid.Nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	id, err := contactID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	contact, err := h.contacts.Delete(ctx, id, callerID)
	if err != nil {
		h.logFailure(r, "contact deletion failed", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, deleteResponse{Message: "contact deleted", Contact: contact})
}

// contactID parses the {id} path segment. A malformed id cannot name any
// contact, so it reports not found rather than a validation error.
func contactID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeNotFound, "contact not found")
	}
	return id, nil
}

func (h *Handler) logFailure(r *http.Request, msg string, err error) {
	h.logger.WarnContext(r.Context(), msg,
		"error", err.Error(),
		"request_id", requestcontext.RequestID(r.Context()),
	)
}
