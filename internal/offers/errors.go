package offers

import "errors"

var (
	// ErrNotFound indicates the offer does not exist for the user.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a malformed or out-of-domain configuration.
	ErrInvalidInput = errors.New("invalid input")
)
