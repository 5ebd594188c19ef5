// Package session holds the acting user. Identities come from an external
// provider; the session only switches between them.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// ErrUnknownUser indicates a user id the identity provider does not know
var ErrUnknownUser = errors.New("unknown user")

// Session holds the current user. It is safe for concurrent use.
type Session struct {
	directory Directory
	current   atomic.Pointer[models.User]
}

// New creates a session with no user logged in
func New(directory Directory) *Session {
	return &Session{directory: directory}
}

// Current returns the acting user, or nil after Logout
func (s *Session) Current() *models.User {
	return s.current.Load()
}

// SwitchUser replaces the current user with the user identified by id
func (s *Session) SwitchUser(id types.UserID) error {
	u, ok := s.directory.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUser, id)
	}
	prev := s.current.Swap(u)
	slog.Debug("session user switched", "from", userID(prev), "to", u.ID)
	return nil
}

// Logout clears the current user. Every pipeline then resolves to no access.
func (s *Session) Logout() {
	prev := s.current.Swap(nil)
	slog.Debug("session logged out", "user", userID(prev))
}

func userID(u *models.User) types.UserID {
	if u == nil {
		return ""
	}
	return u.ID
}
