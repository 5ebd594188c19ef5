package board

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealflow/internal/events"
	"github.com/thenoetrevino/dealflow/internal/links"
	"github.com/thenoetrevino/dealflow/internal/metrics"
	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/types"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T, initial *Snapshot, opts ...Option) *Store {
	t.Helper()

	opts = append([]Option{WithLogger(quietLogger()), WithPanicOnViolation(false)}, opts...)
	s, err := NewStore(initial, opts...)
	require.NoError(t, err)
	return s
}

// ============================================================================
// Construction Tests
// ============================================================================

func TestNewStore_RejectsStructuralViolations(t *testing.T) {
	t.Parallel()

	a := pipelineA()
	a.ColumnOrder = []types.ColumnID{"inbox"}
	initial := newTestSnapshot(t, links.Registry{}, a)

	_, err := NewStore(initial, WithLogger(quietLogger()))
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestNewStore_AcceptsToleratedViolations(t *testing.T) {
	t.Parallel()

	a := pipelineA()
	a.Columns["done"] = models.Column{ID: "done", Title: "Done", CompanyIDs: types.CompanyIDs("c3", "ghost")}
	s := newTestStore(t, newTestSnapshot(t, links.Registry{}, a))

	assert.Equal(t, int64(0), s.Snapshot().Version)
}

func TestNewStore_NilInitial(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, nil)
	assert.Empty(t, s.ListAccessiblePipelines(admin))
	assert.Equal(t, ReasonNotFound, s.MoveCompany(admin, "c1", "A", "B").Reason)
}

// ============================================================================
// Mutation Tests
// ============================================================================

func TestStore_CommitsAppliedMutations(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, newTestSnapshot(t, links.Registry{}), WithIDFunc(sequentialIDs("c1-copy-1")))

	res := s.Reorder(alice, ReorderRequest{PipelineID: "A", SourceColumnID: "inbox", DestColumnID: "done"})
	require.True(t, res.Applied)
	assert.Same(t, res.Snapshot, s.Snapshot())

	res = s.DuplicateCompany(admin, DuplicateRequest{CompanyID: "c2", SourcePipelineID: "A", TargetPipelineID: "B", Linked: true})
	require.True(t, res.Applied, res.Detail)
	assert.Equal(t, types.CompanyID("c1-copy-1"), res.CompanyID)

	res = s.UpdateNotes(admin, "A", "c2", "call back")
	require.True(t, res.Applied, res.Detail)
	assert.Equal(t, "call back", s.Snapshot().Pipelines["B"].Companies["c1-copy-1"].Notes)

	res = s.MoveCompany(alice, "c3", "A", "B")
	require.True(t, res.Applied, res.Detail)

	res = s.DeleteCompany(admin, "c1", "A")
	require.True(t, res.Applied, res.Detail)

	assert.Equal(t, int64(5), s.Snapshot().Version)
	assert.NoError(t, Validate(s.Snapshot()))
	assert.Empty(t, Violations(s.Snapshot()))
}

func TestStore_RejectedMutationsKeepSnapshot(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, newTestSnapshot(t, links.Registry{}))
	before := s.Snapshot()

	res := s.MoveCompany(bob, "c1", "A", "B")
	assert.True(t, res.Blocked())
	assert.Same(t, before, res.Snapshot)

	res = s.DeleteCompany(bob, "c1", "A")
	assert.True(t, res.Blocked())

	assert.Same(t, before, s.Snapshot())
	assert.Equal(t, models.AccessFull, s.AccessLevel(bob, "A"))
	assert.Equal(t, models.AccessRead, s.AccessLevel(bob, "B"))
}

func TestStore_RefusesIntroducedViolation(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	s := newTestStore(t, newTestSnapshot(t, links.Registry{}), WithMetrics(m))
	before := s.Snapshot()

	res := s.apply(admin, OpMove, brokenTransition)

	assert.False(t, res.Applied)
	assert.Equal(t, ReasonInvariant, res.Reason)
	assert.ErrorIs(t, res.Err(), ErrInvariant)
	assert.Same(t, before, s.Snapshot())
	assert.Equal(t, float64(1), m.MutationCount("move", "invariant_violation"))
	assert.Equal(t, float64(0), m.SnapshotCount())
}

func TestStore_PanicsOnIntroducedViolation(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, newTestSnapshot(t, links.Registry{}), WithPanicOnViolation(true))
	before := s.Snapshot()

	assert.Panics(t, func() {
		s.apply(admin, OpMove, brokenTransition)
	})
	assert.Same(t, before, s.Snapshot())

	// the writer lock is released after the panic
	res := s.Reorder(admin, ReorderRequest{PipelineID: "A", SourceColumnID: "inbox", DestColumnID: "done"})
	assert.True(t, res.Applied)
}

func TestStore_MoveOverStaleTargetEntry(t *testing.T) {
	t.Parallel()

	b := pipelineB()
	b.Columns["closed"] = models.Column{ID: "closed", Title: "Closed", CompanyIDs: types.CompanyIDs("c1")}
	s := newTestStore(t, newTestSnapshot(t, links.Registry{}, pipelineA(), b), WithPanicOnViolation(true))

	var res Result
	require.NotPanics(t, func() {
		res = s.MoveCompany(alice, "c1", "A", "B")
	})
	require.True(t, res.Applied, res.Detail)
	assert.Equal(t, []types.PipelineID{"B"}, s.Snapshot().FindCompany("c1"))
	assert.Empty(t, Violations(s.Snapshot()))
}

// brokenTransition lists c1 in two columns of A
func brokenTransition(cur *Snapshot) Result {
	next := cur.Pipelines["A"].Clone()
	done := next.Columns["done"].Clone()
	done.CompanyIDs = append(done.CompanyIDs, "c1")
	next.Columns["done"] = done
	return applied(OpMove, cur.with(cur.Links, next), "c1", "A")
}

// ============================================================================
// Event and Metric Tests
// ============================================================================

func TestStore_PublishesCommittedSnapshots(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	bus := events.NewBus(8)
	onB, cancelB := bus.Subscribe("B")
	defer cancelB()
	onA, cancelA := bus.Subscribe("A")
	defer cancelA()

	s := newTestStore(t, newTestSnapshot(t, links.Registry{}),
		WithPublisher(bus),
		WithClock(func() time.Time { return fixed }))

	s.Reorder(alice, ReorderRequest{PipelineID: "A", SourceColumnID: "inbox", DestColumnID: "done"})
	s.MoveCompany(bob, "c1", "A", "B") // denied, publishes nothing
	s.MoveCompany(alice, "c1", "A", "B")

	select {
	case ev := <-onB:
		assert.Equal(t, events.EventBoardChanged, ev.Type)
		assert.Equal(t, "move", ev.Operation)
		assert.Equal(t, int64(2), ev.SequenceID)
		assert.Equal(t, fixed, ev.Timestamp)
		assert.ElementsMatch(t, []types.PipelineID{"A", "B"}, ev.PipelineIDs)
	default:
		t.Fatal("expected an event for pipeline B")
	}

	var seqs []int64
	for len(onA) > 0 {
		seqs = append(seqs, (<-onA).SequenceID)
	}
	assert.Equal(t, []int64{1, 2}, seqs)
	assert.Empty(t, onB)
}

func TestStore_RecordsMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	s := newTestStore(t, newTestSnapshot(t, links.Registry{}), WithMetrics(m))

	s.MoveCompany(bob, "c1", "A", "B")
	s.MoveCompany(alice, "c1", "A", "B")
	s.MoveCompany(alice, "c1", "A", "B")
	s.DeleteCompany(alice, "c2", "A")

	assert.Equal(t, float64(1), m.MutationCount("move", "access_denied"))
	assert.Equal(t, float64(1), m.MutationCount("move", "applied"))
	assert.Equal(t, float64(1), m.MutationCount("move", "not_found"))
	assert.Equal(t, float64(1), m.MutationCount("delete", "access_denied"))
	assert.Equal(t, float64(1), m.SnapshotCount())
}

// ============================================================================
// Concurrency Tests
// ============================================================================

func TestStore_ConcurrentReordersLoseNothing(t *testing.T) {
	t.Parallel()

	const n = 50
	s := newTestStore(t, newTestSnapshot(t, links.Registry{}))
	want := membership(s.Snapshot().Pipelines["A"])

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := s.Reorder(bob, ReorderRequest{
				PipelineID:     "A",
				SourceColumnID: "inbox",
				SourceIndex:    0,
				DestColumnID:   "inbox",
				DestIndex:      1,
			})
			assert.True(t, res.Applied, res.Detail)
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap := s.Snapshot()
			assert.Empty(t, PipelineViolations(snap.Pipelines["A"]))
			assert.Len(t, s.ListAccessiblePipelines(bob), 3)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(n), s.Snapshot().Version)
	assert.Equal(t, want, membership(s.Snapshot().Pipelines["A"]))
	// an even number of swaps restores the original order
	assert.Equal(t, types.CompanyIDs("c1", "c2"), s.Snapshot().Pipelines["A"].Columns["inbox"].CompanyIDs)
}

func TestStore_ConcurrentDuplicates(t *testing.T) {
	t.Parallel()

	const n = 40
	s := newTestStore(t, newTestSnapshot(t, links.Registry{}))

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res := s.DuplicateCompany(admin, DuplicateRequest{
				CompanyID:        "c1",
				SourcePipelineID: "A",
				TargetPipelineID: "B",
				Linked:           i%2 == 0,
			})
			assert.True(t, res.Applied, res.Detail)
		}(i)
	}
	wg.Wait()

	b := s.Snapshot().Pipelines["B"]
	assert.Len(t, b.Companies, n+1)
	assert.Len(t, b.Columns["lead"].CompanyIDs, n+1)
	assert.Equal(t, n/2, s.Snapshot().Links.Len())
	assert.Empty(t, PipelineViolations(b))

	res := s.UpdateNotes(admin, "A", "c1", fmt.Sprintf("%d copies", n))
	require.True(t, res.Applied)
	synced := 0
	for _, c := range s.Snapshot().Pipelines["B"].Companies {
		if c.Notes == res.Snapshot.Pipelines["A"].Companies["c1"].Notes {
			synced++
		}
	}
	assert.Equal(t, n/2, synced)
}
