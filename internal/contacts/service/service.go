package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"contacthub/internal/audit"
	"contacthub/internal/contacts/models"
	"contacthub/internal/platform/metrics"
	dErrors "contacthub/pkg/domain-errors"
	"contacthub/pkg/platform/sentinel"
	"contacthub/pkg/requestcontext"
)

// ContactStore persists contacts. Methods return sentinel.ErrNotFound
// (wrapped) when the contact does not exist.
type ContactStore interface {
	Create(ctx context.Context, contact *models.Contact) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuditPublisher records auditable actions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is the ownership-enforced CRUD engine. Every mutating operation
// runs lookup → ownership check → execute; the sequence is not transactional
// against concurrent owner mutations (last write wins, by design).
type Service struct {
	contacts       ContactStore
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(contacts ContactStore, opts ...Option) *Service {
	s := &Service{contacts: contacts}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create persists a new contact owned by the caller.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *models.CreateContactRequest) (*models.Contact, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	contact, err := models.NewContact(uuid.New(), ownerID, req.Name, req.Email, req.Phone, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create contact")
	}

	s.logAudit(ctx, audit.Event{UserID: ownerID, Action: audit.ActionContactCreated, Subject: contact.ID.String()})
	if s.metrics != nil {
		s.metrics.ContactsCreated.Inc()
	}
	return contact, nil
}

// List returns all contacts owned by the caller. Ordering is
// implementation-defined.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*models.Contact, error) {
	contacts, err := s.contacts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list contacts")
	}
	return contacts, nil
}

// Get fetches a contact by id. Reads are scoped by List; there is no per-id
// ownership check.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "contact not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load contact")
	}
	return contact, nil
}

// Update applies a partial field merge after the ownership check and returns
// the new state.
func (s *Service) Update(ctx context.Context, id uuid.UUID, callerID uuid.UUID, req *models.UpdateContactRequest) (*models.Contact, error) {
	contact, err := s.lookupOwned(ctx, id, callerID, "update")
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	req.Apply(contact, requestcontext.Now(ctx))
	if err := s.contacts.Update(ctx, contact); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "contact not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update contact")
	}

	s.logAudit(ctx, audit.Event{UserID: callerID, Action: audit.ActionContactUpdated, Subject: contact.ID.String()})
	if s.metrics != nil {
		s.metrics.ContactsUpdated.Inc()
	}
	return contact, nil
}

// Delete removes the contact after the ownership check and returns the
// removed record for client-side confirmation.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) (*models.Contact, error) {
	contact, err := s.lookupOwned(ctx, id, callerID, "delete")
	if err != nil {
		return nil, err
	}

	if err := s.contacts.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "contact not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete contact")
	}

	s.logAudit(ctx, audit.Event{UserID: callerID, Action: audit.ActionContactDeleted, Subject: contact.ID.String()})
	if s.metrics != nil {
		s.metrics.ContactsDeleted.Inc()
	}
	return contact, nil
}

// lookupOwned is the lookup → ownership check half of every mutating
// operation. Existence is checked before ownership, so a missing contact is
// 404 and a foreign one is 403. The forbidden message names the attempted
// action but never the true owner.
func (s *Service) lookupOwned(ctx context.Context, id uuid.UUID, callerID uuid.UUID, action string) (*models.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "contact not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load contact")
	}
	if !contact.IsOwnedBy(callerID) {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "ownership check failed",
				"action", action,
				"contact_id", id,
				"caller_id", callerID,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		return nil, dErrors.Newf(dErrors.CodeForbidden, "not authorized to %s another user's contact", action)
	}
	return contact, nil
}

func (s *Service) logAudit(ctx context.Context, event audit.Event) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event.Action),
			"user_id", event.UserID,
			"subject", event.Subject,
			"request_id", requestcontext.RequestID(ctx),
			"log_type", "audit",
		)
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to record audit event",
			"error", err.Error(),
			"action", event.Action,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}
