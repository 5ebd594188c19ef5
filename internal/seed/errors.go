package seed

import "errors"

var (
	// ErrUnknownDriver indicates a seed driver other than builtin, yaml or sqlite
	ErrUnknownDriver = errors.New("unknown seed driver")

	// ErrInvalidSeed indicates seed data that cannot describe a board
	ErrInvalidSeed = errors.New("invalid seed")

	// ErrMissingPath indicates a file-backed driver configured without a path
	ErrMissingPath = errors.New("seed path is required")
)
