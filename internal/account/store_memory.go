package account

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"healthlink/internal/domain"
	"healthlink/pkg/platform/sentinel"
)

// In-memory stores back the service tests and mirror the postgres conflict
// semantics exactly: unique name upsert, unique email/national id inserts.

type InMemoryOrganizationStore struct {
	mu   sync.RWMutex
	orgs map[uuid.UUID]domain.Organization
}

func NewInMemoryOrganizationStore() *InMemoryOrganizationStore {
	return &InMemoryOrganizationStore{orgs: make(map[uuid.UUID]domain.Organization)}
}

func (s *InMemoryOrganizationStore) Upsert(_ context.Context, name string, orgType domain.OrganizationType) (domain.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, org := range s.orgs {
		if strings.EqualFold(org.Name, name) {
			org.Type = orgType
			s.orgs[id] = org
			return org, nil
		}
	}
	org := domain.Organization{
		ID:        uuid.New(),
		Name:      name,
		Type:      orgType,
		CreatedAt: time.Now().UTC(),
	}
	s.orgs[org.ID] = org
	return org, nil
}

func (s *InMemoryOrganizationStore) FindByID(_ context.Context, id uuid.UUID) (domain.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if org, ok := s.orgs[id]; ok {
		return org, nil
	}
	return domain.Organization{}, sentinel.ErrNotFound
}

// Count reports the number of stored organizations; test helper.
func (s *InMemoryOrganizationStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orgs)
}

type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]domain.User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[uuid.UUID]domain.User)}
}

func (s *InMemoryUserStore) Create(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conflicts(user) {
		return sentinel.ErrConflict
	}
	s.users[user.ID] = user
	return nil
}

func (s *InMemoryUserStore) FindActiveByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email && user.IsActive {
			return user, nil
		}
	}
	return domain.User{}, sentinel.ErrNotFound
}

func (s *InMemoryUserStore) UpsertIgnore(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return nil
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *InMemoryUserStore) conflicts(user domain.User) bool {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return true
		}
		if user.NationalID != nil && existing.NationalID != nil && *existing.NationalID == *user.NationalID {
			return true
		}
	}
	return false
}
