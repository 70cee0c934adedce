package simulations

import "errors"

var (
	// ErrNotFound indicates an entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotScored indicates the evaluation has no stored result to
	// simulate against.
	ErrNotScored = errors.New("evaluation has no stored result")

	// ErrFixUnknown indicates a fix id absent from the catalog.
	ErrFixUnknown = errors.New("unknown fix")

	// ErrFixNotSimulatable indicates a fix whose effect lives in execution,
	// not in any configuration field.
	ErrFixNotSimulatable = errors.New("fix is not expressible as a configuration change")

	// ErrFixNotApplicable indicates a fix that maps to configuration fields
	// but cannot move this particular configuration.
	ErrFixNotApplicable = errors.New("fix does not apply to this configuration")
)
