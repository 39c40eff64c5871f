package repository

import "errors"

var (
	// ErrNotFound maps to a 404 at the API boundary.
	ErrNotFound = errors.New("record not found")
	// ErrConflict maps to a 409 at the API boundary.
	ErrConflict = errors.New("record already exists")
)
