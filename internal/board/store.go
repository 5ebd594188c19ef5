package board

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/dealflow/internal/events"
	"github.com/thenoetrevino/dealflow/internal/id"
	"github.com/thenoetrevino/dealflow/internal/metrics"
	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// Store holds the current board snapshot and serializes mutations.
//
// Reads load the latest committed snapshot without locking. Mutations take
// the writer lock, compute the next snapshot from the latest committed one
// and swap it in, so concurrent mutations never act on a stale snapshot.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]

	publisher        events.Publisher
	metrics          *metrics.Metrics
	logger           *slog.Logger
	now              func() time.Time
	newID            IDFunc
	panicOnViolation bool
}

// NewStore creates a store holding initial. Snapshots with structural
// violations are rejected; tolerated violations (dangling column entries,
// companies in no column) are logged and kept.
func NewStore(initial *Snapshot, opts ...Option) (*Store, error) {
	if initial == nil {
		initial = &Snapshot{Pipelines: map[types.PipelineID]*models.Pipeline{}}
	}

	s := &Store{
		logger:           slog.Default(),
		now:              time.Now,
		panicOnViolation: panicOnViolationDefault,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.newID == nil {
		s.newID = id.NewGenerator(s.now).CopyID
	}

	if err := Validate(initial); err != nil {
		return nil, fmt.Errorf("invalid initial board: %w", err)
	}
	for _, v := range Violations(initial) {
		s.logger.Warn("seeded board violates a tolerated invariant", "violation", v.String())
	}

	s.current.Store(initial)
	for _, p := range initial.Pipelines {
		s.metrics.SetCompanies(string(p.ID), len(p.Companies))
	}
	return s, nil
}

// Snapshot returns the latest committed snapshot
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// AccessLevel resolves user's access to a pipeline in the latest snapshot
func (s *Store) AccessLevel(user *models.User, pipelineID types.PipelineID) models.AccessLevel {
	return s.Snapshot().AccessLevel(user, pipelineID)
}

// ListAccessiblePipelines returns the pipelines user can see, in collection
// order
func (s *Store) ListAccessiblePipelines(user *models.User) []*models.Pipeline {
	return s.Snapshot().AccessiblePipelines(user)
}

// Board resolves a pipeline for display in the latest snapshot
func (s *Store) Board(user *models.User, pipelineID types.PipelineID) (BoardView, bool) {
	return s.Snapshot().Board(user, pipelineID)
}

// Reorder moves a company within a pipeline
func (s *Store) Reorder(user *models.User, req ReorderRequest) Result {
	return s.apply(user, OpReorder, func(cur *Snapshot) Result {
		return Reorder(cur, user, req)
	})
}

// MoveCompany moves a company from one pipeline to another
func (s *Store) MoveCompany(user *models.User, companyID types.CompanyID, sourceID, targetID types.PipelineID) Result {
	return s.apply(user, OpMove, func(cur *Snapshot) Result {
		return Move(cur, user, companyID, sourceID, targetID)
	})
}

// DuplicateCompany copies a company into a target pipeline, optionally
// linking the copy to its original
func (s *Store) DuplicateCompany(user *models.User, req DuplicateRequest) Result {
	return s.apply(user, OpDuplicate, func(cur *Snapshot) Result {
		return Duplicate(cur, user, req, s.newID)
	})
}

// UpdateNotes edits a company's notes and propagates them to linked companies
func (s *Store) UpdateNotes(user *models.User, pipelineID types.PipelineID, companyID types.CompanyID, notes string) Result {
	return s.apply(user, OpUpdateNotes, func(cur *Snapshot) Result {
		return UpdateNotes(cur, user, pipelineID, companyID, notes)
	})
}

// DeleteCompany removes a company from a pipeline (admin only)
func (s *Store) DeleteCompany(user *models.User, companyID types.CompanyID, pipelineID types.PipelineID) Result {
	return s.apply(user, OpDelete, func(cur *Snapshot) Result {
		return Delete(cur, user, companyID, pipelineID)
	})
}

// apply runs one transition against the latest snapshot and commits it
func (s *Store) apply(user *models.User, op Operation, transition func(*Snapshot) Result) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	res := transition(cur)

	if res.Applied {
		if violations := introduced(cur, res.Snapshot, res.Changed); len(violations) > 0 {
			err := &InvariantError{Violations: violations}
			if s.panicOnViolation {
				panic(fmt.Sprintf("%s: %v", op, err))
			}
			s.logger.Error("refusing board transition", "operation", op, "error", err)
			res = rejected(op, cur, ReasonInvariant, "%v", err)
		}
	}

	if res.Applied {
		s.current.Store(res.Snapshot)
		s.commit(res)
	}

	s.record(user, res)
	return res
}

func (s *Store) commit(res Result) {
	s.metrics.IncSnapshots()
	for _, pid := range res.Changed {
		if p, ok := res.Snapshot.Pipelines[pid]; ok {
			s.metrics.SetCompanies(string(pid), len(p.Companies))
		}
	}

	if s.publisher == nil {
		return
	}
	s.publisher.Publish(events.Event{
		Type:        events.EventBoardChanged,
		Operation:   string(res.Operation),
		PipelineIDs: res.Changed,
		Timestamp:   s.now(),
		SequenceID:  res.Snapshot.Version,
	})
}

func (s *Store) record(user *models.User, res Result) {
	s.metrics.ObserveMutation(string(res.Operation), string(res.Reason))

	var actor types.UserID
	if user != nil {
		actor = user.ID
	}

	switch res.Reason {
	case ReasonApplied:
		s.logger.Debug("board mutation applied",
			"operation", res.Operation,
			"user", actor,
			"company_id", res.CompanyID,
			"pipelines", res.Changed,
			"version", res.Snapshot.Version)
	case ReasonAccessDenied:
		s.logger.Info("board mutation denied",
			"operation", res.Operation,
			"user", actor,
			"reason", res.Reason,
			"detail", res.Detail)
	default:
		s.logger.Debug("board mutation not applied",
			"operation", res.Operation,
			"user", actor,
			"reason", res.Reason,
			"detail", res.Detail)
	}
}
