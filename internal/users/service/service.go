package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"contacthub/internal/audit"
	"contacthub/internal/platform/metrics"
	"contacthub/internal/users/models"
	"contacthub/internal/users/secrets"
	dErrors "contacthub/pkg/domain-errors"
	"contacthub/pkg/platform/sentinel"
	"contacthub/pkg/requestcontext"
)

// UserStore persists identity records. Create returns sentinel.ErrConflict
// when the email is already taken, which covers the race between the
// existence check and the insert.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// TokenIssuer mints signed bearer credentials.
type TokenIssuer interface {
	Generate(userID uuid.UUID, username, email string, now time.Time) (string, error)
}

// TokenRevoker records a token jti as revoked for its remaining lifetime.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// AuditPublisher records auditable actions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates registration, login and logout.
type Service struct {
	users          UserStore
	tokens         TokenIssuer
	revoker        TokenRevoker
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

func WithTokenRevoker(revoker TokenRevoker) Option {
	return func(s *Service) {
		s.revoker = revoker
	}
}

// New constructs a Service.
func New(users UserStore, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{users: users, tokens: tokens}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new identity. Email lookup is an exact, case-sensitive
// match. The plaintext password exists only on the stack of this call.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "user already registered")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check existing user")
	}

	hash, err := secrets.Hash(req.Password)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	user, err := models.NewUser(uuid.New(), req.Username, req.Email, hash, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "user already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	s.logAudit(ctx, audit.Event{UserID: user.ID, Action: audit.ActionUserRegistered, Subject: user.Email})
	if s.metrics != nil {
		s.metrics.UsersRegistered.Inc()
	}
	return user, nil
}

// Login verifies the password and issues a bearer token. Unknown email and
// wrong password are indistinguishable to the caller, preventing account
// enumeration.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}

	if err := secrets.Verify(req.Password, user.PasswordHash); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
	}

	token, err := s.tokens.Generate(user.ID, user.Username, user.Email, requestcontext.Now(ctx))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.logAudit(ctx, audit.Event{UserID: user.ID, Action: audit.ActionUserLogin, Subject: user.Email})
	if s.metrics != nil {
		s.metrics.Logins.Inc()
	}
	return token, nil
}

// Logout revokes the presented token's jti until it would have expired
// anyway. Without a configured revoker, logout is a client-side concern and
// this is a no-op.
func (s *Service) Logout(ctx context.Context, jti string, remaining time.Duration) error {
	if s.revoker == nil || jti == "" || remaining <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, jti, remaining); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke token")
	}
	s.logAudit(ctx, audit.Event{UserID: requestcontext.UserID(ctx), Action: audit.ActionUserLogout, Subject: jti})
	return nil
}

// GetUser loads an identity by id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

func (s *Service) logAudit(ctx context.Context, event audit.Event) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event.Action),
			"user_id", event.UserID,
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
