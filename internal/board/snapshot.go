// Package board owns the pipelines and every mutation applied to them.
//
// State is held as an immutable Snapshot. Each mutation reads the latest
// snapshot, builds a new one that shares every untouched pipeline with its
// predecessor, and publishes it atomically. Readers never see a partially
// applied change.
package board

import (
	"fmt"

	"github.com/thenoetrevino/dealflow/internal/access"
	"github.com/thenoetrevino/dealflow/internal/links"
	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// Snapshot is the complete board state at one point in time. Snapshots and
// everything reachable from them are read-only.
type Snapshot struct {
	Version   int64
	Pipelines map[types.PipelineID]*models.Pipeline
	Order     []types.PipelineID
	Links     links.Registry
}

// NewSnapshot builds the initial snapshot from seeded pipelines, keeping the
// given order. Nil maps are normalized to empty ones. The snapshot takes
// ownership of the pipelines.
func NewSnapshot(pipelines []*models.Pipeline, registry links.Registry) (*Snapshot, error) {
	s := &Snapshot{
		Pipelines: make(map[types.PipelineID]*models.Pipeline, len(pipelines)),
		Order:     make([]types.PipelineID, 0, len(pipelines)),
		Links:     registry,
	}
	for _, p := range pipelines {
		if p == nil {
			continue
		}
		if p.ID == "" {
			return nil, ErrEmptyPipelineID
		}
		if _, dup := s.Pipelines[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePipeline, p.ID)
		}
		if p.Companies == nil {
			p.Companies = map[types.CompanyID]models.Company{}
		}
		if p.Columns == nil {
			p.Columns = map[types.ColumnID]models.Column{}
		}
		s.Pipelines[p.ID] = p
		s.Order = append(s.Order, p.ID)
	}
	return s, nil
}

// Pipeline returns the pipeline with the given id
func (s *Snapshot) Pipeline(id types.PipelineID) (*models.Pipeline, bool) {
	p, ok := s.Pipelines[id]
	return p, ok
}

// Ordered returns every pipeline in collection order
func (s *Snapshot) Ordered() []*models.Pipeline {
	out := make([]*models.Pipeline, 0, len(s.Order))
	for _, id := range s.Order {
		if p, ok := s.Pipelines[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// AccessLevel resolves user's access on the pipeline with the given id.
// Unknown pipelines resolve to none.
func (s *Snapshot) AccessLevel(user *models.User, pipelineID types.PipelineID) models.AccessLevel {
	p, ok := s.Pipelines[pipelineID]
	if !ok {
		return models.AccessNone
	}
	return access.Level(user, p)
}

// AccessiblePipelines returns, in collection order, every pipeline on which
// user has any access.
func (s *Snapshot) AccessiblePipelines(user *models.User) []*models.Pipeline {
	var out []*models.Pipeline
	for _, p := range s.Ordered() {
		if access.CanView(user, p) {
			out = append(out, p)
		}
	}
	return out
}

// FindCompany returns the ids of the pipelines whose companies map holds
// companyID, in collection order.
func (s *Snapshot) FindCompany(companyID types.CompanyID) []types.PipelineID {
	var out []types.PipelineID
	for _, id := range s.Order {
		if s.Pipelines[id].HasCompany(companyID) {
			out = append(out, id)
		}
	}
	return out
}

// CompanyCount returns the number of companies across all pipelines
func (s *Snapshot) CompanyCount() int {
	n := 0
	for _, p := range s.Pipelines {
		n += len(p.Companies)
	}
	return n
}

// with derives the next snapshot, replacing the given pipelines and sharing
// all others with s.
func (s *Snapshot) with(registry links.Registry, changed ...*models.Pipeline) *Snapshot {
	next := &Snapshot{
		Version:   s.Version + 1,
		Pipelines: make(map[types.PipelineID]*models.Pipeline, len(s.Pipelines)),
		Order:     s.Order,
		Links:     registry,
	}
	for id, p := range s.Pipelines {
		next.Pipelines[id] = p
	}
	for _, p := range changed {
		next.Pipelines[p.ID] = p
	}
	return next
}
