package store

import (
	"context"
	"slices"
	"sync"

	"github.com/afoley587/coding-challenges-2025/user-records/internal/user"
)

// InMemoryStore is an implementation of UserStore backed by an ordered
// slice.  It is safe for concurrent use.  Data stored in this store is
// not persisted beyond the lifetime of the process.
type InMemoryStore struct {
	mu    sync.Mutex
	users []user.User
}

// NewInMemoryStore constructs an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users: make([]user.User, 0),
	}
}

// AddUser appends u to the store.  It never fails.
func (s *InMemoryStore) AddUser(ctx context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
	return u, nil
}

// GetUser scans the store in insertion order and returns the first
// match.
func (s *InMemoryStore) GetUser(ctx context.Context, id int64) (user.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := firstByID(s.users, id)
	return u, ok, nil
}

// ListUsers returns a copy of all users.  Callers may modify the
// returned slice freely.
func (s *InMemoryStore) ListUsers(ctx context.Context) ([]user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.users), nil
}

func (s *InMemoryStore) ListUsersByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filterByRole(s.users, role), nil
}

// Close is a no-op.
func (s *InMemoryStore) Close() error { return nil }
