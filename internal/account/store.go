package account

import (
	"context"

	"github.com/google/uuid"

	"healthlink/internal/domain"
)

// Stores are interface-driven to keep the service testable and to allow
// swapping the in-memory implementation for PostgreSQL without rewiring
// business code.

// OrganizationStore persists organizations keyed by their unique name.
type OrganizationStore interface {
	// Upsert inserts the organization or, when the name already exists,
	// updates its type and returns the existing row's id. The conflict
	// clause is the only coordination between racing signups.
	Upsert(ctx context.Context, name string, orgType domain.OrganizationType) (domain.Organization, error)

	FindByID(ctx context.Context, id uuid.UUID) (domain.Organization, error)
}

// UserStore persists user accounts.
type UserStore interface {
	// Create inserts a new user. A duplicate email or national id surfaces
	// as sentinel.ErrConflict.
	Create(ctx context.Context, user domain.User) error

	// FindActiveByEmail returns the active user with the given (normalized)
	// email, or sentinel.ErrNotFound. Inactive users are invisible here on
	// purpose: sign-in must not distinguish them.
	FindActiveByEmail(ctx context.Context, email string) (domain.User, error)

	// UpsertIgnore inserts the user unless the email already exists, in
	// which case it is a no-op. Used by the development seed.
	UpsertIgnore(ctx context.Context, user domain.User) error
}
