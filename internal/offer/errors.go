package offer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncomplete marks evaluation attempts against a configuration with
// unanswered required fields.
var ErrIncomplete = errors.New("offer configuration incomplete")

// IncompleteError carries the unanswered fields alongside ErrIncomplete so
// callers can tell users exactly what is missing.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("offer configuration incomplete: missing %s", strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }
