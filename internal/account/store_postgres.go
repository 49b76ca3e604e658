package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"healthlink/internal/domain"
	"healthlink/internal/storage/postgres"
	"healthlink/pkg/platform/sentinel"
)

// PostgresOrganizationStore persists organizations. Pure I/O; validation
// belongs to the service.
type PostgresOrganizationStore struct {
	db *sql.DB
}

func NewPostgresOrganizationStore(db *sql.DB) *PostgresOrganizationStore {
	return &PostgresOrganizationStore{db: db}
}

func (s *PostgresOrganizationStore) Upsert(ctx context.Context, name string, orgType domain.OrganizationType) (domain.Organization, error) {
	org := domain.Organization{Name: name, Type: orgType}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO organizations (id, name, type)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET type = EXCLUDED.type
		RETURNING id, created_at
	`, uuid.New(), name, string(orgType)).Scan(&org.ID, &org.CreatedAt)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("upsert organization: %w", err)
	}
	return org, nil
}

func (s *PostgresOrganizationStore) FindByID(ctx context.Context, id uuid.UUID) (domain.Organization, error) {
	var org domain.Organization
	var orgType string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, type, created_at FROM organizations WHERE id = $1
	`, id).Scan(&org.ID, &org.Name, &orgType, &org.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Organization{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.Organization{}, fmt.Errorf("find organization: %w", err)
	}
	org.Type = domain.OrganizationType(orgType)
	return org, nil
}

// PostgresUserStore persists user accounts.
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) Create(ctx context.Context, user domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, national_id, password_hash, first_name, last_name, role, organization_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
	`, user.ID, user.Email, user.NationalID, user.PasswordHash,
		user.FirstName, user.LastName, string(user.Role), user.OrganizationID)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) FindActiveByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	var role string
	var orgID sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT u.id, u.email, u.national_id, u.password_hash, u.first_name, u.last_name,
		       u.role, u.organization_id, u.is_active, u.created_at
		FROM users u
		WHERE u.email = $1 AND u.is_active = TRUE
	`, email).Scan(&user.ID, &user.Email, &user.NationalID, &user.PasswordHash,
		&user.FirstName, &user.LastName, &role, &orgID, &user.IsActive, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("find user by email: %w", err)
	}
	user.Role = domain.Role(role)
	if orgID.Valid {
		parsed, err := uuid.Parse(orgID.String)
		if err != nil {
			return domain.User{}, fmt.Errorf("parse organization id: %w", err)
		}
		user.OrganizationID = parsed
	}
	return user, nil
}

func (s *PostgresUserStore) UpsertIgnore(ctx context.Context, user domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, national_id, password_hash, first_name, last_name, role, organization_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		ON CONFLICT (email) DO NOTHING
	`, user.ID, user.Email, user.NationalID, user.PasswordHash,
		user.FirstName, user.LastName, string(user.Role), user.OrganizationID)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
