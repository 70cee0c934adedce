package proofdocs

import "time"

// ProofDocument is an uploaded proof asset (case study, testimonial,
// results report) attached to an offer.
type ProofDocument struct {
	ID               string
	UserID           string
	OfferID          string
	FileName         string
	MimeType         string
	SizeBytes        int64
	StorageKey       string
	ExtractedTextKey string
	ExtractedAt      *time.Time
	CreatedAt        time.Time
	DeletedAt        *time.Time
}
