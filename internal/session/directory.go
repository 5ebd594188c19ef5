package session

import (
	"sort"

	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// Directory is the identity provider's view of known users
type Directory interface {
	Lookup(id types.UserID) (*models.User, bool)
}

// StaticDirectory is a Directory backed by a fixed set of users, as produced
// by the seed loader.
type StaticDirectory struct {
	users map[types.UserID]*models.User
}

// NewStaticDirectory indexes users by id. Later duplicates win.
func NewStaticDirectory(users []models.User) *StaticDirectory {
	d := &StaticDirectory{users: make(map[types.UserID]*models.User, len(users))}
	for i := range users {
		u := users[i]
		d.users[u.ID] = &u
	}
	return d
}

// Lookup returns the user with the given id
func (d *StaticDirectory) Lookup(id types.UserID) (*models.User, bool) {
	u, ok := d.users[id]
	return u, ok
}

// Users returns every known user sorted by id
func (d *StaticDirectory) Users() []*models.User {
	out := make([]*models.User, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
