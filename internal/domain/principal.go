package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Role distinguishes the two kinds of principal.
type Role string

// Principal roles
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ErrInvalidRole is returned for a role outside the defined set.
var ErrInvalidRole = errors.New("invalid role")

// IsValid reports whether r is a defined role.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Principal is the authenticated identity behind a request. Role selects
// which credential store ID refers to.
type Principal struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
}

// UserPrincipal builds the principal for a regular account.
func UserPrincipal(u *User) Principal {
	return Principal{ID: u.ID, Username: u.Username, Role: RoleUser}
}

// AdminPrincipal builds the principal for an admin account.
func AdminPrincipal(a *Admin) Principal {
	return Principal{ID: a.ID, Username: a.Username, Role: RoleAdmin}
}

// IsAdmin reports whether p is an admin.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsUser reports whether p is a regular user.
func (p Principal) IsUser() bool {
	return p.Role == RoleUser
}
