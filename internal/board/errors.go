package board

import "errors"

// Snapshot construction errors
var (
	ErrEmptyPipelineID   = errors.New("pipeline id cannot be empty")
	ErrDuplicatePipeline = errors.New("duplicate pipeline id")
)

// Mutation outcome errors, returned by Result.Err
var (
	// ErrAccessDenied indicates the acting user lacks the access level (or
	// role) the operation requires on a touched pipeline
	ErrAccessDenied = errors.New("access denied")

	// ErrNotFound indicates a pipeline, column or company absent from the
	// current snapshot
	ErrNotFound = errors.New("not found")

	// ErrOutOfBounds indicates a column index outside the current list
	ErrOutOfBounds = errors.New("index out of bounds")

	// ErrNoColumns indicates a target pipeline without columns to place a
	// company in
	ErrNoColumns = errors.New("target pipeline has no columns")

	// ErrConflict indicates the target already holds the company id
	ErrConflict = errors.New("company id already present in target")

	// ErrInvariant indicates a transition that would have broken the board
	// invariants and was refused
	ErrInvariant = errors.New("board invariant violated")
)
