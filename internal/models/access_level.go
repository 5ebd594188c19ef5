package models

import (
	"fmt"
	"strings"
)

// AccessLevel is a user's access to a single pipeline.
// Levels are totally ordered: AccessNone < AccessRead < AccessFull.
type AccessLevel int

const (
	AccessNone AccessLevel = iota
	AccessRead
	AccessFull
)

func (l AccessLevel) String() string {
	switch l {
	case AccessRead:
		return "read"
	case AccessFull:
		return "full"
	default:
		return "none"
	}
}

// AtLeast reports whether l grants everything required grants
func (l AccessLevel) AtLeast(required AccessLevel) bool {
	return l >= required
}

// ParseAccessLevel parses "none", "read" or "full" (case-insensitive)
func ParseAccessLevel(s string) (AccessLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return AccessNone, nil
	case "read":
		return AccessRead, nil
	case "full":
		return AccessFull, nil
	default:
		return AccessNone, fmt.Errorf("%w: %q", ErrInvalidAccessLevel, s)
	}
}

// MarshalText implements encoding.TextMarshaler (used by both JSON and YAML)
func (l AccessLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *AccessLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseAccessLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
