package lockout

import (
	"testing"
	"time"
)

func TestLocksAfterThreshold(t *testing.T) {
	svc := New(WithLimits(3, time.Minute))

	for i := 0; i < 2; i++ {
		svc.RecordFailure("alice@example.com")
	}
	if svc.IsLocked("alice@example.com") {
		t.Fatalf("locked before threshold")
	}

	svc.RecordFailure("alice@example.com")
	if !svc.IsLocked("alice@example.com") {
		t.Fatalf("expected lock at threshold")
	}
	if svc.IsLocked("bob@example.com") {
		t.Fatalf("other identifiers must be unaffected")
	}
}

func TestWindowExpiryUnlocks(t *testing.T) {
	current := time.Now()
	svc := New(WithLimits(2, time.Minute), WithClock(func() time.Time { return current }))

	svc.RecordFailure("alice@example.com")
	svc.RecordFailure("alice@example.com")
	if !svc.IsLocked("alice@example.com") {
		t.Fatalf("expected lock")
	}

	current = current.Add(2 * time.Minute)
	if svc.IsLocked("alice@example.com") {
		t.Fatalf("expected lock to expire with the window")
	}
}

func TestClearResetsCounter(t *testing.T) {
	svc := New(WithLimits(2, time.Minute))

	svc.RecordFailure("alice@example.com")
	svc.RecordFailure("alice@example.com")
	svc.Clear("alice@example.com")
	if svc.IsLocked("alice@example.com") {
		t.Fatalf("expected clear to unlock")
	}
}

func TestStaleFailuresStartNewWindow(t *testing.T) {
	current := time.Now()
	svc := New(WithLimits(2, time.Minute), WithClock(func() time.Time { return current }))

	svc.RecordFailure("alice@example.com")
	current = current.Add(2 * time.Minute)
	svc.RecordFailure("alice@example.com")

	if svc.IsLocked("alice@example.com") {
		t.Fatalf("failures across expired windows must not accumulate")
	}
}
