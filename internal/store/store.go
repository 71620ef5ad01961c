package store

import (
	"context"

	"github.com/afoley587/coding-challenges-2025/user-records/internal/user"
)

// UserStore defines an append-only, insertion-ordered collection of
// users.
//
// Implementations may use different backends (in-memory for tests and
// the demo, Redis or SQLite when records should outlive the process).
// The gRPC and HTTP services depend on this abstraction rather than a
// concrete data store.
//
// Every backend must honor the same ordering contract: ListUsers and
// ListUsersByRole return records in the order they were added, and
// GetUser returns the earliest added record carrying the id.  A
// missing record is reported through the boolean result, never
// through the error.
type UserStore interface {
	// AddUser appends u and returns it unchanged.  Duplicate ids are
	// accepted.
	AddUser(ctx context.Context, u user.User) (user.User, error)
	// GetUser returns the first user added with the given id.  ok is
	// false when no such user exists.
	GetUser(ctx context.Context, id int64) (u user.User, ok bool, err error)
	// ListUsers returns a snapshot of all users in insertion order.
	ListUsers(ctx context.Context) ([]user.User, error)
	// ListUsersByRole returns the users holding role, in insertion
	// order.  No match yields an empty slice.
	ListUsersByRole(ctx context.Context, role user.Role) ([]user.User, error)
	// Close releases backend resources.
	Close() error
}

func filterByRole(users []user.User, role user.Role) []user.User {
	out := make([]user.User, 0, len(users))
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

func firstByID(users []user.User, id int64) (user.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return user.User{}, false
}
