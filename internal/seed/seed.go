// Package seed creates the well-known development admin account. The HTTP
// layer only exposes it in development environments.
package seed

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"healthlink/internal/account"
	"healthlink/internal/account/secrets"
	"healthlink/internal/audit"
	"healthlink/internal/auth"
	"healthlink/internal/domain"
	dErrors "healthlink/pkg/domain-errors"
)

const (
	adminEmail       = "admin@example.com"
	seedOrganization = "Ministry of Health"
)

// Credentials are returned to the caller for convenience; they are the
// well-known development pair, not a secret.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service idempotently provisions the admin organization and account.
type Service struct {
	orgs         account.OrganizationStore
	users        account.UserStore
	ensureSchema account.SchemaEnsurer
	recorder     *audit.Recorder
	logger       *slog.Logger
	simulate     bool
}

type Option func(*Service)

func WithAuditRecorder(recorder *audit.Recorder) Option {
	return func(s *Service) { s.recorder = recorder }
}

func WithSchemaEnsurer(ensure account.SchemaEnsurer) Option {
	return func(s *Service) { s.ensureSchema = ensure }
}

// NewService builds a live seed service.
func NewService(orgs account.OrganizationStore, users account.UserStore, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		orgs:   orgs,
		users:  users,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSimulatedService builds a seed service that returns the credentials
// without touching storage.
func NewSimulatedService(logger *slog.Logger, opts ...Option) *Service {
	s := NewService(nil, nil, logger, opts...)
	s.simulate = true
	return s
}

// Run provisions the seed records. Safe to call repeatedly: the organization
// upserts by name and the admin insert is ignored when the email exists.
func (s *Service) Run(ctx context.Context) (Credentials, error) {
	creds := Credentials{Email: adminEmail, Password: auth.DevPassword}

	if s.simulate {
		s.logger.InfoContext(ctx, "simulated seed, storage not configured")
		return creds, nil
	}

	if s.ensureSchema != nil {
		if err := s.ensureSchema(ctx); err != nil {
			s.logger.ErrorContext(ctx, "failed to ensure schema", "error", err)
			return Credentials{}, dErrors.Wrap(err, dErrors.CodeInternal, "seed failed")
		}
	}

	org, err := s.orgs.Upsert(ctx, seedOrganization, domain.OrgTypeGovernmentAgency)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to upsert seed organization", "error", err)
		return Credentials{}, dErrors.Wrap(err, dErrors.CodeInternal, "seed failed")
	}

	passwordHash, err := secrets.Hash(auth.DevPassword)
	if err != nil {
		return Credentials{}, dErrors.Wrap(err, dErrors.CodeInternal, "seed failed")
	}

	admin := domain.User{
		ID:             uuid.New(),
		Email:          adminEmail,
		PasswordHash:   passwordHash,
		FirstName:      "Admin",
		LastName:       "User",
		Role:           domain.RoleAdmin,
		OrganizationID: org.ID,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.users.UpsertIgnore(ctx, admin); err != nil {
		s.logger.ErrorContext(ctx, "failed to upsert seed admin", "error", err)
		return Credentials{}, dErrors.Wrap(err, dErrors.CodeInternal, "seed failed")
	}

	s.recorder.Record(ctx, audit.Event{
		Action: audit.ActionSeedRun,
		Email:  adminEmail,
	})
	return creds, nil
}
