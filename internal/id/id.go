// Package id derives identities for duplicated companies.
package id

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// CopyMarker separates the source id from the unique suffix of a copy id
const CopyMarker = "-copy-"

// Generator produces copy ids of the form <source><CopyMarker><ULID>. The
// ULID encodes the creation time in milliseconds and uses monotonic entropy,
// so ids generated within the same millisecond still sort and never collide.
type Generator struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy *ulid.MonotonicEntropy
}

// NewGenerator returns a generator reading time from now. A nil now uses
// time.Now.
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		now:     now,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

// CopyID derives a fresh id for a duplicate of source
func (g *Generator) CopyID(source types.CompanyID) (types.CompanyID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	u, err := ulid.New(ulid.Timestamp(g.now()), g.entropy)
	if err != nil {
		return "", err
	}
	return types.CompanyID(string(source) + CopyMarker + u.String()), nil
}

// SourceOf strips the copy suffix from a copy id. It returns false for ids
// that were not produced by CopyID.
func SourceOf(copyID types.CompanyID) (types.CompanyID, bool) {
	s := string(copyID)
	if len(s) < len(CopyMarker)+ulid.EncodedSize {
		return "", false
	}
	cut := len(s) - ulid.EncodedSize - len(CopyMarker)
	if s[cut:cut+len(CopyMarker)] != CopyMarker {
		return "", false
	}
	if _, err := ulid.ParseStrict(s[cut+len(CopyMarker):]); err != nil {
		return "", false
	}
	return types.CompanyID(s[:cut]), true
}
