package identity

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	dErrors "healthlink/pkg/domain-errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

type stubProvider struct {
	person Person
	err    error
	calls  int
}

func (p *stubProvider) ID() string { return "stub" }

func (p *stubProvider) Lookup(context.Context, string) (Person, error) {
	p.calls++
	return p.person, p.err
}

func TestResolveCompleteFieldsSkipLookup(t *testing.T) {
	provider := &stubProvider{person: Person{FirstName: "X", LastName: "Y", Email: "x@y.z"}}
	r := NewResolver(provider, false, testLogger())

	known := Person{FirstName: "Alice", LastName: "Umutoni", Email: "alice@example.com"}
	got, err := r.Resolve(context.Background(), "1199080012345678", known)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != known {
		t.Fatalf("expected fields unchanged, got %+v", got)
	}
	if provider.calls != 0 {
		t.Fatalf("expected no lookup when all fields present, got %d calls", provider.calls)
	}
}

func TestResolveMergeKeepsCallerValues(t *testing.T) {
	provider := &stubProvider{person: Person{FirstName: "Looked", LastName: "Up", Email: "looked@up.example"}}
	r := NewResolver(provider, false, testLogger())

	got, err := r.Resolve(context.Background(), "1199080012345678", Person{FirstName: "Alice"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.FirstName != "Alice" {
		t.Fatalf("caller value must win, got %q", got.FirstName)
	}
	if got.LastName != "Up" || got.Email != "looked@up.example" {
		t.Fatalf("missing fields must come from lookup, got %+v", got)
	}
	if provider.calls != 1 {
		t.Fatalf("expected exactly one lookup, got %d", provider.calls)
	}
}

func TestResolveLookupFailureDegradesToSimulation(t *testing.T) {
	provider := &stubProvider{err: NewProviderError(ErrorProviderOutage, "stub", "down", errors.New("connection refused"))}
	r := NewResolver(provider, true, testLogger())

	nationalID := "1199080012345678"
	got, err := r.Resolve(context.Background(), nationalID, Person{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.FirstName != SimulatedFirstName {
		t.Fatalf("expected placeholder first name, got %q", got.FirstName)
	}
	if !strings.HasSuffix(got.LastName, nationalID[len(nationalID)-4:]) {
		t.Fatalf("last name %q must end with last 4 of national id", got.LastName)
	}
	if !strings.Contains(got.Email, nationalID[len(nationalID)-6:]) {
		t.Fatalf("email %q must contain last 6 of national id", got.Email)
	}
	if provider.calls != 1 {
		t.Fatalf("a failed lookup must not be retried, got %d calls", provider.calls)
	}
}

func TestResolveLookupFailureInLiveModeRejects(t *testing.T) {
	provider := &stubProvider{err: NewProviderError(ErrorProviderOutage, "stub", "down", nil)}
	r := NewResolver(provider, false, testLogger())

	_, err := r.Resolve(context.Background(), "1199080012345678", Person{FirstName: "Alice"})
	if !dErrors.HasCode(err, dErrors.CodeBadRequest) {
		t.Fatalf("expected bad_request when fields stay missing in live mode, got %v", err)
	}
}

func TestResolveNoProviderSimulation(t *testing.T) {
	r := NewResolver(nil, true, testLogger())

	got, err := r.Resolve(context.Background(), "1199080012345678", Person{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != (Person{
		FirstName: "John",
		LastName:  "Citizen-5678",
		Email:     "user+345678@example.com",
	}) {
		t.Fatalf("unexpected simulated person: %+v", got)
	}
}

func TestResolveMissingNationalID(t *testing.T) {
	r := NewResolver(nil, true, testLogger())
	_, err := r.Resolve(context.Background(), "", Person{})
	if !dErrors.HasCode(err, dErrors.CodeBadRequest) {
		t.Fatalf("expected bad_request, got %v", err)
	}
}

func TestSimulatedProviderShortID(t *testing.T) {
	got, err := NewSimulatedProvider().Lookup(context.Background(), "42")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.LastName != "Citizen-42" {
		t.Fatalf("short ids use the whole value, got %q", got.LastName)
	}
	if got.Email != "user+42@example.com" {
		t.Fatalf("unexpected email: %q", got.Email)
	}
}
