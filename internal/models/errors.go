package models

import "errors"

// Validation errors for values parsed from seeds and user input
var (
	// ErrInvalidAccessLevel indicates an access level other than none, read or full
	ErrInvalidAccessLevel = errors.New("invalid access level (must be: none, read, full)")

	// ErrInvalidRole indicates a role other than admin or user
	ErrInvalidRole = errors.New("invalid role (must be: admin, user)")
)
