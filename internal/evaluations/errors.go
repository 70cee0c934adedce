package evaluations

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrNoResult              = errors.New("no stored result to phrase")
	ErrPhrasingInProgress    = errors.New("phrasing in progress")
	ErrJobQueueNotConfigured = errors.New("job queue not configured")
)

const (
	ErrorCodePhrasingTimeout     = "PHRASING_TIMEOUT"
	ErrorCodePhrasingInvalid     = "PHRASING_INVALID"
	ErrorCodePhrasingUnavailable = "PHRASING_UNAVAILABLE"
	ErrorCodeStorage             = "STORAGE_ERROR"
	ErrorCodeInternal            = "INTERNAL_ERROR"
)
