package auth

import (
	"context"
	"errors"
	"log/slog"

	"healthlink/internal/account"
	"healthlink/internal/account/secrets"
	"healthlink/internal/audit"
	"healthlink/internal/domain"
	"healthlink/internal/lockout"
	"healthlink/internal/platform/metrics"
	dErrors "healthlink/pkg/domain-errors"
	"healthlink/pkg/platform/sentinel"
)

// DevPassword is the fixed development secret. It is the only accepted
// password in simulation mode and, when the bypass flag is explicitly
// enabled, a legacy escape hatch in live mode.
const DevPassword = "admin123"

// errInvalidCredentials is shared by every rejection path so unknown emails,
// inactive users and wrong passwords are indistinguishable to the caller.
var errInvalidCredentials = dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")

// Authenticator verifies credentials and produces session claims.
type Authenticator struct {
	users    account.UserStore
	orgs     account.OrganizationStore
	lockout  *lockout.Service
	recorder *audit.Recorder
	metrics  *metrics.Metrics
	logger   *slog.Logger
	simulate bool

	// devBypass re-enables the legacy fixed-password escape hatch in live
	// mode. Known weakening, off unless explicitly configured.
	devBypass bool
}

type Option func(*Authenticator)

func WithAuditRecorder(recorder *audit.Recorder) Option {
	return func(a *Authenticator) { a.recorder = recorder }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Authenticator) { a.metrics = m }
}

func WithLockout(l *lockout.Service) Option {
	return func(a *Authenticator) { a.lockout = l }
}

// WithDevPasswordBypass toggles acceptance of DevPassword for any existing
// account regardless of its stored hash. Every use is logged.
func WithDevPasswordBypass(enabled bool) Option {
	return func(a *Authenticator) { a.devBypass = enabled }
}

// NewAuthenticator builds a live authenticator backed by the given stores.
func NewAuthenticator(users account.UserStore, orgs account.OrganizationStore, logger *slog.Logger, opts ...Option) *Authenticator {
	a := &Authenticator{
		users:  users,
		orgs:   orgs,
		logger: logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewSimulatedAuthenticator builds an authenticator for simulation mode: the
// only accepted secret is DevPassword, and the resulting claims carry a
// synthetic admin identity with no organization.
func NewSimulatedAuthenticator(logger *slog.Logger, opts ...Option) *Authenticator {
	a := NewAuthenticator(nil, nil, logger, opts...)
	a.simulate = true
	return a
}

// SignIn verifies the email/password pair and returns session claims.
func (a *Authenticator) SignIn(ctx context.Context, email, password string) (Claims, error) {
	claims, err := a.signIn(ctx, email, password)
	a.countSignIn(err)
	return claims, err
}

func (a *Authenticator) signIn(ctx context.Context, email, password string) (Claims, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return Claims{}, errInvalidCredentials
	}

	if a.simulate {
		if password != DevPassword {
			return Claims{}, errInvalidCredentials
		}
		return Claims{
			UserID:    "local-dev-user",
			Email:     email,
			FirstName: "Dev",
			LastName:  "User",
			Role:      domain.RoleAdmin,
		}, nil
	}

	if a.lockout != nil && a.lockout.IsLocked(email) {
		return Claims{}, dErrors.New(dErrors.CodeUnavailable, "too many failed attempts, try again later")
	}

	user, err := a.users.FindActiveByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			a.logger.ErrorContext(ctx, "user lookup failed", "error", err)
		}
		return Claims{}, a.reject(ctx, email)
	}

	if a.devBypass && password == DevPassword {
		a.logger.WarnContext(ctx, "dev password bypass used",
			"email", email,
			"user_id", user.ID.String(),
		)
	} else if err := secrets.Verify(password, user.PasswordHash); err != nil {
		if !dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			a.logger.ErrorContext(ctx, "password verification failed", "error", err)
		}
		return Claims{}, a.reject(ctx, email)
	}

	if a.lockout != nil {
		a.lockout.Clear(email)
	}

	claims := Claims{
		UserID:    user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}
	if org, err := a.orgs.FindByID(ctx, user.OrganizationID); err == nil {
		claims.OrganizationID = org.ID.String()
		claims.OrganizationName = org.Name
		claims.OrganizationType = org.Type
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		a.logger.ErrorContext(ctx, "organization lookup failed",
			"user_id", user.ID.String(),
			"error", err,
		)
	}

	a.recorder.Record(ctx, audit.Event{
		Action: audit.ActionSignInSucceeded,
		Email:  email,
		UserID: user.ID,
	})
	return claims, nil
}

// reject records the failure and returns the uniform rejection.
func (a *Authenticator) reject(ctx context.Context, email string) error {
	if a.lockout != nil {
		a.lockout.RecordFailure(email)
	}
	a.recorder.Record(ctx, audit.Event{
		Action: audit.ActionSignInFailed,
		Email:  email,
	})
	return errInvalidCredentials
}

func (a *Authenticator) countSignIn(err error) {
	if err == nil {
		a.metrics.IncSignIn(metrics.OutcomeSuccess)
		return
	}
	a.metrics.IncSignIn(metrics.OutcomeRejected)
}
