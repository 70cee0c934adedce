package snapshots

import "time"

// Snapshot is a stored capture of one evaluation: the offer configuration
// and the deterministic result, frozen as a versioned document.
type Snapshot struct {
	ID             string
	UserID         string
	OfferID        string
	EvaluationID   string
	RulesetVersion string
	Document       []byte
	StorageKey     string
	SizeBytes      int64
	CreatedAt      time.Time
	DeletedAt      *time.Time
}
