package models

import (
	"fmt"

	"github.com/thenoetrevino/dealflow/internal/types"
)

// Role is the global role assigned by the identity provider
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// ParseRole validates a role string
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// User is an identity supplied by the external identity provider.
// Users are never modified after they are issued.
type User struct {
	ID   types.UserID `yaml:"id" json:"id"`
	Name string       `yaml:"name" json:"name"`
	Role Role         `yaml:"role" json:"role"`
}

// IsAdmin reports whether u is non-nil and holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
