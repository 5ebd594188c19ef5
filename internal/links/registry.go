// Package links records which duplicated companies stay linked to the company
// they were copied from, so note edits can follow the link.
package links

import (
	"sort"

	"github.com/thenoetrevino/dealflow/internal/types"
)

// Link associates a duplicate with the company it was copied from
type Link struct {
	CopyID     types.CompanyID `yaml:"copy_id" json:"copy_id"`
	OriginalID types.CompanyID `yaml:"original_id" json:"original_id"`
}

// Registry maps copy ids to original ids. The zero value is an empty
// registry.
//
// A Registry is immutable: Register returns a new Registry and leaves the
// receiver untouched, so a registry can be embedded in a board snapshot and
// shared between snapshots.
type Registry struct {
	origins map[types.CompanyID]types.CompanyID
}

// New builds a registry from existing links. Later entries overwrite earlier
// ones for the same copy id.
func New(entries ...Link) Registry {
	var r Registry
	for _, l := range entries {
		r = r.Register(l.CopyID, l.OriginalID)
	}
	return r
}

// Register returns a registry in which copyID maps to originalID. A copy maps
// to at most one original; registering again overwrites the previous entry.
// Self links are ignored.
func (r Registry) Register(copyID, originalID types.CompanyID) Registry {
	if copyID == "" || originalID == "" || copyID == originalID {
		return r
	}
	next := make(map[types.CompanyID]types.CompanyID, len(r.origins)+1)
	for k, v := range r.origins {
		next[k] = v
	}
	next[copyID] = originalID
	return Registry{origins: next}
}

// Original returns the company copyID was duplicated from
func (r Registry) Original(copyID types.CompanyID) (types.CompanyID, bool) {
	id, ok := r.origins[copyID]
	return id, ok
}

// CopiesOf returns every copy registered against originalID, sorted
func (r Registry) CopiesOf(originalID types.CompanyID) []types.CompanyID {
	var out []types.CompanyID
	for copyID, orig := range r.origins {
		if orig == originalID {
			out = append(out, copyID)
		}
	}
	sortIDs(out)
	return out
}

// ResolveLinked returns the ids directly linked to id: its original when id
// is a copy, and every copy when id is an original. Links are followed one
// hop only; copies of copies are reached through their own direct link and
// never transitively.
func (r Registry) ResolveLinked(id types.CompanyID) []types.CompanyID {
	var out []types.CompanyID
	if orig, ok := r.origins[id]; ok {
		out = append(out, orig)
	}
	for copyID, orig := range r.origins {
		if orig == id {
			out = append(out, copyID)
		}
	}
	sortIDs(out)
	return out
}

// Len returns the number of registered links
func (r Registry) Len() int {
	return len(r.origins)
}

// Entries returns all links sorted by copy id
func (r Registry) Entries() []Link {
	out := make([]Link, 0, len(r.origins))
	for copyID, orig := range r.origins {
		out = append(out, Link{CopyID: copyID, OriginalID: orig})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CopyID < out[j].CopyID })
	return out
}

func sortIDs(ids []types.CompanyID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
