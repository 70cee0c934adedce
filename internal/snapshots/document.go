package snapshots

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"offerfit-backend/internal/engine"
	"offerfit-backend/internal/offer"
)

// SchemaVersion is the document schema this build reads and writes.
const SchemaVersion = 1

// Document is the archival form of a snapshot. It must round-trip the full
// offer configuration and evaluation result without loss, so a stored
// snapshot stays interpretable after the live rule-set moves on.
type Document struct {
	SchemaVersion int                 `json:"schemaVersion"`
	SnapshotID    string              `json:"snapshotId"`
	UserID        string              `json:"userId"`
	CapturedAt    time.Time           `json:"capturedAt"`
	Offer         offer.Configuration `json:"offer"`
	Result        engine.Result       `json:"result"`
}

// Validate checks basic document constraints.
func (d *Document) Validate() error {
	if d == nil {
		return errors.New("document is nil")
	}
	if d.SchemaVersion != SchemaVersion {
		return fmt.Errorf("%w: %d", ErrUnknownSchema, d.SchemaVersion)
	}
	if d.SnapshotID == "" {
		return errors.New("snapshotId is required")
	}
	if d.UserID == "" {
		return errors.New("userId is required")
	}
	if d.CapturedAt.IsZero() {
		return errors.New("capturedAt is required")
	}
	if d.Result.RulesetVersion == "" {
		return errors.New("result.rulesetVersion is required")
	}
	return nil
}

// EncodeDocument serializes a document after validating it.
func EncodeDocument(doc Document) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// DecodeDocument parses raw bytes into a document. The schema version is
// checked before the full payload is decoded so callers get ErrUnknownSchema
// rather than a half-filled struct.
func DecodeDocument(raw []byte) (Document, error) {
	var probe struct {
		SchemaVersion int `json:"schemaVersion"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Document{}, fmt.Errorf("parse snapshot document: %w", err)
	}
	if probe.SchemaVersion != SchemaVersion {
		return Document{}, fmt.Errorf("%w: %d", ErrUnknownSchema, probe.SchemaVersion)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("parse snapshot document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}
