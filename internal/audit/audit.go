// Package audit keeps a best-effort trail of authentication events. Audit
// failures never fail the request that produced them; recorders log and move
// on.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Action identifies the audited operation.
type Action string

const (
	ActionSignupCreated   Action = "signup.created"
	ActionSignInSucceeded Action = "signin.succeeded"
	ActionSignInFailed    Action = "signin.failed"
	ActionSeedRun         Action = "seed.run"
)

// Event is one audit trail entry.
type Event struct {
	ID        uuid.UUID
	Action    Action
	Email     string
	UserID    uuid.UUID
	RequestID string
	Detail    string
	Timestamp time.Time
}

// Store appends audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Recorder writes events to a store, swallowing failures.
type Recorder struct {
	store  Store
	logger *slog.Logger
}

// NewRecorder builds a recorder. A nil store yields a no-op recorder so
// simulation mode can skip auditing without nil checks at call sites.
func NewRecorder(store Store, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Record appends the event, filling ID and timestamp when unset.
func (r *Recorder) Record(ctx context.Context, event Event) {
	if r == nil || r.store == nil {
		return
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := r.store.Append(ctx, event); err != nil {
		r.logger.WarnContext(ctx, "failed to append audit event",
			"action", string(event.Action),
			"error", err,
		)
	}
}
