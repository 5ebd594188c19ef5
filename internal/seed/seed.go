// Package seed loads the initial users, pipelines and links the board starts
// from. Seeds come from the embedded sample data, a YAML file, or a SQLite
// database.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/thenoetrevino/dealflow/internal/board"
	"github.com/thenoetrevino/dealflow/internal/links"
	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/session"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// Seed drivers
const (
	DriverBuiltin = "builtin"
	DriverYAML    = "yaml"
	DriverSQLite  = "sqlite"
)

//go:embed builtin.yaml
var builtinYAML []byte

// Seed is the externally supplied starting state
type Seed struct {
	Users     []models.User      `yaml:"users"`
	Pipelines []*models.Pipeline `yaml:"pipelines"`
	Links     []links.Link       `yaml:"links"`
}

// Builtin returns the sample data shipped with the binary
func Builtin() (*Seed, error) {
	return ParseYAML(builtinYAML)
}

// Load reads a seed with the given driver. An empty driver infers one from
// the path: no path means builtin, a .db/.sqlite suffix means sqlite, anything
// else yaml.
func Load(ctx context.Context, driver, path string) (*Seed, error) {
	if driver == "" {
		driver = inferDriver(path)
	}

	switch driver {
	case DriverBuiltin:
		return Builtin()
	case DriverYAML:
		if path == "" {
			return nil, fmt.Errorf("%w for driver %s", ErrMissingPath, driver)
		}
		return LoadYAMLFile(path)
	case DriverSQLite:
		if path == "" {
			return nil, fmt.Errorf("%w for driver %s", ErrMissingPath, driver)
		}
		db, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		defer closeDB(db)
		return LoadSQLite(ctx, db)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

func inferDriver(path string) string {
	switch {
	case path == "":
		return DriverBuiltin
	case strings.HasSuffix(path, ".db"), strings.HasSuffix(path, ".sqlite"), strings.HasSuffix(path, ".sqlite3"):
		return DriverSQLite
	default:
		return DriverYAML
	}
}

// Validate checks what the board itself cannot: user identities and link
// entries. Pipeline structure is checked when the store is created.
func (s *Seed) Validate() error {
	seen := make(map[types.UserID]bool, len(s.Users))
	for _, u := range s.Users {
		if u.ID == "" {
			return fmt.Errorf("%w: user with empty id", ErrInvalidSeed)
		}
		if seen[u.ID] {
			return fmt.Errorf("%w: duplicate user %s", ErrInvalidSeed, u.ID)
		}
		seen[u.ID] = true
		if !u.Role.Valid() {
			return fmt.Errorf("%w: user %s: %w", ErrInvalidSeed, u.ID, models.ErrInvalidRole)
		}
	}
	for _, l := range s.Links {
		if l.CopyID == "" || l.OriginalID == "" {
			return fmt.Errorf("%w: link with empty id", ErrInvalidSeed)
		}
	}
	return nil
}

// Snapshot builds the initial board snapshot
func (s *Seed) Snapshot() (*board.Snapshot, error) {
	return board.NewSnapshot(s.Pipelines, links.New(s.Links...))
}

// Directory returns the seeded users as an identity directory
func (s *Seed) Directory() *session.StaticDirectory {
	return session.NewStaticDirectory(s.Users)
}

// FromSnapshot captures a snapshot and its users as a seed
func FromSnapshot(snap *board.Snapshot, users []models.User) *Seed {
	return &Seed{
		Users:     users,
		Pipelines: snap.Ordered(),
		Links:     snap.Links.Entries(),
	}
}
