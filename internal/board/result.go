package board

import (
	"fmt"

	"github.com/thenoetrevino/dealflow/internal/types"
)

// Operation names a board mutation
type Operation string

const (
	OpReorder     Operation = "reorder"
	OpMove        Operation = "move"
	OpDuplicate   Operation = "duplicate"
	OpUpdateNotes Operation = "update_notes"
	OpDelete      Operation = "delete"
)

// Reason explains a mutation outcome
type Reason string

const (
	ReasonApplied      Reason = "applied"
	ReasonNoop         Reason = "noop"
	ReasonAccessDenied Reason = "access_denied"
	ReasonNotFound     Reason = "not_found"
	ReasonOutOfBounds  Reason = "out_of_bounds"
	ReasonNoColumns    Reason = "no_columns"
	ReasonConflict     Reason = "conflict"
	ReasonInvariant    Reason = "invariant_violation"
)

// Result is the outcome of a mutation. A mutation that is not applied leaves
// the board unchanged and Snapshot is the snapshot it was evaluated against.
type Result struct {
	Operation Operation
	Applied   bool
	Reason    Reason
	Detail    string

	// Snapshot is the committed snapshot after the operation
	Snapshot *Snapshot

	// Changed lists the pipelines whose contents changed
	Changed []types.PipelineID

	// CompanyID is the company acted on; for duplicate it is the new copy
	CompanyID types.CompanyID

	// Skipped lists pipelines a note update could not propagate to because
	// the user lacks full access there
	Skipped []types.PipelineID
}

// Err maps the reason to a sentinel error. Applied results and no-op input
// return nil.
func (r Result) Err() error {
	var base error
	switch r.Reason {
	case ReasonApplied, ReasonNoop:
		return nil
	case ReasonAccessDenied:
		base = ErrAccessDenied
	case ReasonNotFound:
		base = ErrNotFound
	case ReasonOutOfBounds:
		base = ErrOutOfBounds
	case ReasonNoColumns:
		base = ErrNoColumns
	case ReasonConflict:
		base = ErrConflict
	case ReasonInvariant:
		base = ErrInvariant
	default:
		return nil
	}
	if r.Detail == "" {
		return fmt.Errorf("%s: %w", r.Operation, base)
	}
	return fmt.Errorf("%s: %w: %s", r.Operation, base, r.Detail)
}

// Blocked reports whether the operation was refused by the access policy
func (r Result) Blocked() bool {
	return r.Reason == ReasonAccessDenied
}

func applied(op Operation, next *Snapshot, companyID types.CompanyID, changed ...types.PipelineID) Result {
	return Result{
		Operation: op,
		Applied:   true,
		Reason:    ReasonApplied,
		Snapshot:  next,
		Changed:   changed,
		CompanyID: companyID,
	}
}

func rejected(op Operation, cur *Snapshot, reason Reason, format string, args ...any) Result {
	return Result{
		Operation: op,
		Reason:    reason,
		Detail:    fmt.Sprintf(format, args...),
		Snapshot:  cur,
	}
}
