package snapshots

import "errors"

var (
	// ErrNotFound indicates an entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownSchema indicates a document with a schema version this
	// build does not understand.
	ErrUnknownSchema = errors.New("unknown snapshot schema version")
)
