package account

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"healthlink/internal/account/secrets"
	"healthlink/internal/audit"
	"healthlink/internal/domain"
	"healthlink/internal/identity"
	"healthlink/internal/platform/metrics"
	dErrors "healthlink/pkg/domain-errors"
	"healthlink/pkg/platform/sentinel"
)

// Defaults applied when the signup request leaves fields blank.
const (
	DefaultRole             = "provider"
	DefaultOrganizationName = "Default Organization"
	DefaultOrganizationType = "hospital"
)

// SignupRequest carries the signup form fields. NationalID and Password are
// required; everything else has defaults or is completed by the resolver.
type SignupRequest struct {
	NationalID       string
	Email            string
	Password         string
	FirstName        string
	LastName         string
	Role             string
	OrganizationName string
	OrganizationType string
}

// SignupResult reports the outcome. Simulated is true when no storage is
// configured and nothing was written.
type SignupResult struct {
	Simulated    bool
	UserID       uuid.UUID
	Organization domain.Organization
}

// SchemaEnsurer idempotently creates the backing tables before the first
// write. Implemented by internal/storage/postgres.
type SchemaEnsurer func(ctx context.Context) error

// Service implements the signup flow: validate, resolve identity, upsert the
// organization, hash the credential, insert the user.
type Service struct {
	orgs         OrganizationStore
	users        UserStore
	resolver     *identity.Resolver
	ensureSchema SchemaEnsurer
	recorder     *audit.Recorder
	metrics      *metrics.Metrics
	logger       *slog.Logger
	simulate     bool
}

type Option func(*Service)

func WithAuditRecorder(recorder *audit.Recorder) Option {
	return func(s *Service) { s.recorder = recorder }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithSchemaEnsurer installs the idempotent schema creation hook, invoked on
// every signup before the first write.
func WithSchemaEnsurer(ensure SchemaEnsurer) Option {
	return func(s *Service) { s.ensureSchema = ensure }
}

// NewService builds a live signup service backed by the given stores.
func NewService(orgs OrganizationStore, users UserStore, resolver *identity.Resolver, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		orgs:     orgs,
		users:    users,
		resolver: resolver,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSimulatedService builds a signup service for simulation mode: requests
// validate and resolve as usual but short-circuit before any storage access.
func NewSimulatedService(resolver *identity.Resolver, logger *slog.Logger, opts ...Option) *Service {
	s := NewService(nil, nil, resolver, logger, opts...)
	s.simulate = true
	return s
}

// Signup runs the flow described above. Validation failures return
// bad_request before any side effect; duplicate email/national id returns
// conflict; unexpected storage failures return internal with the detail
// logged server-side only.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (SignupResult, error) {
	result, err := s.signup(ctx, req)
	s.countSignup(result, err)
	return result, err
}

func (s *Service) signup(ctx context.Context, req SignupRequest) (SignupResult, error) {
	nationalID := strings.TrimSpace(req.NationalID)
	if nationalID == "" {
		return SignupResult{}, dErrors.New(dErrors.CodeBadRequest, "nationalId is required")
	}
	if req.Password == "" {
		return SignupResult{}, dErrors.New(dErrors.CodeBadRequest, "password is required")
	}

	role, err := domain.ParseRole(orDefault(req.Role, DefaultRole))
	if err != nil {
		return SignupResult{}, err
	}
	orgType, err := domain.ParseOrganizationType(orDefault(req.OrganizationType, DefaultOrganizationType))
	if err != nil {
		return SignupResult{}, err
	}
	orgName := strings.TrimSpace(orDefault(req.OrganizationName, DefaultOrganizationName))

	person := identity.Person{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if !person.Complete() {
		person, err = s.resolver.Resolve(ctx, nationalID, person)
		if err != nil {
			return SignupResult{}, err
		}
	}
	email := domain.NormalizeEmail(person.Email)

	if s.simulate {
		s.logger.InfoContext(ctx, "simulated signup, storage not configured",
			"email", email,
			"organization", orgName,
		)
		return SignupResult{Simulated: true}, nil
	}

	if s.ensureSchema != nil {
		if err := s.ensureSchema(ctx); err != nil {
			s.logger.ErrorContext(ctx, "failed to ensure schema", "error", err)
			return SignupResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "signup failed")
		}
	}

	org, err := s.orgs.Upsert(ctx, orgName, orgType)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to upsert organization",
			"organization", orgName,
			"error", err,
		)
		return SignupResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "signup failed")
	}

	passwordHash, err := secrets.Hash(req.Password)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return SignupResult{}, err
		}
		s.logger.ErrorContext(ctx, "failed to hash password", "error", err)
		return SignupResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "signup failed")
	}

	user := domain.User{
		ID:             uuid.New(),
		Email:          email,
		NationalID:     &nationalID,
		PasswordHash:   passwordHash,
		FirstName:      person.FirstName,
		LastName:       person.LastName,
		Role:           role,
		OrganizationID: org.ID,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return SignupResult{}, dErrors.New(dErrors.CodeConflict, "account already exists")
		}
		s.logger.ErrorContext(ctx, "failed to create user",
			"email", email,
			"error", err,
		)
		return SignupResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "signup failed")
	}

	s.recorder.Record(ctx, audit.Event{
		Action: audit.ActionSignupCreated,
		Email:  email,
		UserID: user.ID,
		Detail: "organization " + org.Name,
	})

	return SignupResult{UserID: user.ID, Organization: org}, nil
}

func (s *Service) countSignup(result SignupResult, err error) {
	switch {
	case err == nil && result.Simulated:
		s.metrics.IncSignup(metrics.OutcomeSimulated)
	case err == nil:
		s.metrics.IncSignup(metrics.OutcomeSuccess)
	case dErrors.HasCode(err, dErrors.CodeConflict):
		s.metrics.IncSignup(metrics.OutcomeConflict)
	case dErrors.HasCode(err, dErrors.CodeBadRequest) || dErrors.HasCode(err, dErrors.CodeInvalidInput):
		s.metrics.IncSignup(metrics.OutcomeRejected)
	default:
		s.metrics.IncSignup(metrics.OutcomeError)
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
