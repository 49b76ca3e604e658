package auth

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"healthlink/internal/account"
	"healthlink/internal/account/secrets"
	"healthlink/internal/audit"
	"healthlink/internal/domain"
	"healthlink/internal/lockout"
	dErrors "healthlink/pkg/domain-errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

type fixture struct {
	auth  *Authenticator
	users *account.InMemoryUserStore
	orgs  *account.InMemoryOrganizationStore
	trail *audit.InMemoryStore
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		users: account.NewInMemoryUserStore(),
		orgs:  account.NewInMemoryOrganizationStore(),
		trail: audit.NewInMemoryStore(),
	}
	opts = append(opts, WithAuditRecorder(audit.NewRecorder(f.trail, testLogger())))
	f.auth = NewAuthenticator(f.users, f.orgs, testLogger(), opts...)
	return f
}

func (f *fixture) addUser(t *testing.T, email, password string) domain.User {
	t.Helper()
	org, err := f.orgs.Upsert(context.Background(), "Test Clinic", domain.OrgTypeClinic)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	hash, err := secrets.Hash(password)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	user := domain.User{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   hash,
		FirstName:      "Alice",
		LastName:       "Umutoni",
		Role:           domain.RoleHospitalStaff,
		OrganizationID: org.ID,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := f.users.Create(context.Background(), user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return user
}

func TestSignInSuccessJoinsOrganization(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, "alice@example.com", "secret123")

	claims, err := f.auth.SignIn(context.Background(), "Alice@Example.com", "secret123")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if claims.UserID != user.ID.String() {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
	if claims.OrganizationName != "Test Clinic" || claims.OrganizationType != domain.OrgTypeClinic {
		t.Fatalf("expected organization joined into claims, got %+v", claims)
	}
	if claims.Role != domain.RoleHospitalStaff {
		t.Fatalf("unexpected role: %s", claims.Role)
	}

	events := f.trail.Events()
	if len(events) != 1 || events[0].Action != audit.ActionSignInSucceeded {
		t.Fatalf("expected success audit event, got %+v", events)
	}
}

func TestSignInRejectionsIndistinguishable(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "alice@example.com", "secret123")

	_, errUnknown := f.auth.SignIn(context.Background(), "ghost@example.com", "secret123")
	_, errWrongPassword := f.auth.SignIn(context.Background(), "alice@example.com", "wrong")

	if errUnknown == nil || errWrongPassword == nil {
		t.Fatalf("expected both attempts rejected")
	}
	if errUnknown.Error() != errWrongPassword.Error() {
		t.Fatalf("rejections must be indistinguishable: %q vs %q", errUnknown, errWrongPassword)
	}
	if !dErrors.HasCode(errUnknown, dErrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", errUnknown)
	}
}

func TestSignInInactiveUserRejected(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, "alice@example.com", "secret123")

	// Recreate as inactive under a different email.
	hash := user.PasswordHash
	inactive := domain.User{
		ID:           uuid.New(),
		Email:        "bob@example.com",
		PasswordHash: hash,
		Role:         domain.RolePatient,
		IsActive:     false,
	}
	if err := f.users.Create(context.Background(), inactive); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := f.auth.SignIn(context.Background(), "bob@example.com", "secret123")
	if !dErrors.HasCode(err, dErrors.CodeUnauthorized) {
		t.Fatalf("inactive users must reject uniformly, got %v", err)
	}
}

func TestSignInBypassDisabledByDefault(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "alice@example.com", "secret123")

	_, err := f.auth.SignIn(context.Background(), "alice@example.com", DevPassword)
	if !dErrors.HasCode(err, dErrors.CodeUnauthorized) {
		t.Fatalf("expected bypass off by default, got %v", err)
	}
}

func TestSignInBypassWhenEnabled(t *testing.T) {
	f := newFixture(t, WithDevPasswordBypass(true))
	user := f.addUser(t, "alice@example.com", "secret123")

	claims, err := f.auth.SignIn(context.Background(), "alice@example.com", DevPassword)
	if err != nil {
		t.Fatalf("expected bypass to authenticate, got %v", err)
	}
	if claims.UserID != user.ID.String() {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
}

func TestSignInLockoutAfterRepeatedFailures(t *testing.T) {
	f := newFixture(t, WithLockout(lockout.New(lockout.WithLimits(3, time.Minute))))
	f.addUser(t, "alice@example.com", "secret123")

	for i := 0; i < 3; i++ {
		_, _ = f.auth.SignIn(context.Background(), "alice@example.com", "wrong")
	}

	_, err := f.auth.SignIn(context.Background(), "alice@example.com", "secret123")
	if !dErrors.HasCode(err, dErrors.CodeUnavailable) {
		t.Fatalf("expected lockout, got %v", err)
	}
}

func TestSignInSuccessClearsLockout(t *testing.T) {
	f := newFixture(t, WithLockout(lockout.New(lockout.WithLimits(3, time.Minute))))
	f.addUser(t, "alice@example.com", "secret123")

	_, _ = f.auth.SignIn(context.Background(), "alice@example.com", "wrong")
	_, _ = f.auth.SignIn(context.Background(), "alice@example.com", "wrong")

	if _, err := f.auth.SignIn(context.Background(), "alice@example.com", "secret123"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	// Counter reset: two more failures must not lock.
	_, _ = f.auth.SignIn(context.Background(), "alice@example.com", "wrong")
	_, _ = f.auth.SignIn(context.Background(), "alice@example.com", "wrong")
	if _, err := f.auth.SignIn(context.Background(), "alice@example.com", "secret123"); err != nil {
		t.Fatalf("expected counter cleared on success, got %v", err)
	}
}

func TestSimulatedSignIn(t *testing.T) {
	a := NewSimulatedAuthenticator(testLogger())

	claims, err := a.SignIn(context.Background(), "whoever@example.com", DevPassword)
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if claims.UserID != "local-dev-user" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected simulated claims: %+v", claims)
	}
	if claims.OrganizationID != "" || claims.OrganizationName != "" {
		t.Fatalf("simulated claims carry no organization")
	}

	if _, err := a.SignIn(context.Background(), "whoever@example.com", "anything-else"); err == nil {
		t.Fatalf("expected rejection for any other secret")
	}
}
