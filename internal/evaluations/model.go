package evaluations

import (
	"time"

	"offerfit-backend/internal/engine"
	"offerfit-backend/internal/offer"
)

const (
	StatusScored       = "scored"
	StatusPhrasing     = "phrasing"
	StatusCompleted    = "completed"
	StatusPhraseFailed = "phrase_failed"
)

// PhrasedRecommendation is one deterministic recommendation rewritten to
// customer-facing prose. Fix ties it back to the catalog entry it phrases.
type PhrasedRecommendation struct {
	Fix      string `json:"fix"`
	Headline string `json:"headline"`
	Body     string `json:"body"`
}

// Evaluation is one scored offer configuration. The deterministic result is
// written at creation; the phrasing pass only ever touches Phrased, status,
// and the error fields.
type Evaluation struct {
	ID             string                  `json:"id"`
	OfferID        string                  `json:"offerId"`
	UserID         string                  `json:"userId"`
	Config         offer.Configuration     `json:"config"`
	RulesetVersion string                  `json:"rulesetVersion"`
	PromptVersion  string                  `json:"promptVersion"`
	Provider       string                  `json:"provider"`
	Model          string                  `json:"model"`
	Status         string                  `json:"status"`
	Result         *engine.Result          `json:"result,omitempty"`
	Phrased        []PhrasedRecommendation `json:"phrased,omitempty"`
	PromptHash     string                  `json:"promptHash,omitempty"`
	ErrorCode      string                  `json:"errorCode,omitempty"`
	ErrorMessage   *string                 `json:"errorMessage,omitempty"`
	ErrorRetryable bool                    `json:"errorRetryable,omitempty"`
	PhrasedAt      *time.Time              `json:"phrasedAt,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

// PhrasingUpdate carries the fields the phrasing pass may change. Nil
// pointers leave the stored value untouched; pointers to empty strings
// clear error fields after a successful retry.
type PhrasingUpdate struct {
	ID             string
	Status         string
	Phrased        []PhrasedRecommendation
	PromptHash     *string
	ErrorCode      *string
	ErrorMessage   *string
	ErrorRetryable *bool
	PhrasedAt      *time.Time
}
