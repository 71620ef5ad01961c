package user

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRole is returned by ParseRole for text outside the known
// role set.
var ErrInvalidRole = errors.New("invalid role")

// Role is the closed set of roles a user may hold.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleUser, RoleGuest}

// ParseRole converts text into a Role.  Matching ignores case and
// surrounding whitespace.  Empty text yields RoleUser, the default
// role for new users.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if r == "" {
		return RoleUser, nil
	}
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q (want one of admin, user, guest)", ErrInvalidRole, s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// User is a single record held by a store.  IDs are supplied by the
// caller and are not required to be unique.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// DisplayName formats the user as "Name <email>".
func (u User) DisplayName() string {
	return fmt.Sprintf("%s <%s>", u.Name, u.Email)
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
