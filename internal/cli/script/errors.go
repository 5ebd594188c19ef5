package script

import "errors"

var (
	// ErrInvalidScript indicates a script that does not parse or has a
	// malformed step
	ErrInvalidScript = errors.New("invalid script")

	// ErrUnknownVariable indicates a $name reference to a company id no
	// earlier duplicate step saved
	ErrUnknownVariable = errors.New("unknown variable")

	// ErrStepFailed indicates at least one step did not have the expected
	// outcome
	ErrStepFailed = errors.New("script step failed")
)
