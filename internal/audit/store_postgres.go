package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// PostgresStore appends audit events to the audit_events table. Pure I/O;
// event construction belongs to the recorder.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	var userID any
	if event.UserID != uuid.Nil {
		userID = event.UserID
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (id, action, email, user_id, request_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, event.ID, string(event.Action), event.Email, userID, event.RequestID, event.Detail, event.Timestamp)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
