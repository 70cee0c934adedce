package proofdocs

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"offerfit-backend/internal/offers"
	"offerfit-backend/internal/proofdocs/extract"
	"offerfit-backend/internal/shared/storage/object"
	"offerfit-backend/internal/shared/telemetry"
)

// Service contains business logic for proof documents.
type Service struct {
	Store  object.ObjectStore
	Repo   Repo
	Offers offers.Repo
}

// Upload stores a proof asset for an offer and extracts its text. The
// original and the derived .extracted.txt both live in object storage;
// extraction failure on a parseable-looking file is tolerated so a scanned
// PDF still uploads.
func (s *Service) Upload(ctx context.Context, userID, offerID, fileName, contentType string, r io.Reader) (ProofDocument, error) {
	if fileName == "" {
		return ProofDocument{}, ErrInvalidInput
	}
	if !extract.Supported(fileName, contentType) {
		return ProofDocument{}, ErrUnsupportedType
	}

	if _, err := s.Offers.GetByID(ctx, userID, offerID); err != nil {
		return ProofDocument{}, err
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return ProofDocument{}, err
	}

	doc := ProofDocument{
		ID:         uuid.NewString(),
		UserID:     userID,
		OfferID:    offerID,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}

	text, extractedKey, err := extract.Text(ctx, s.Store, storageKey, mimeType, fileName)
	if err != nil {
		telemetry.Error("proofdoc.extract_failed", map[string]any{
			"proof_document_id": doc.ID,
			"offer_id":          offerID,
			"mime_type":         mimeType,
			"error":             err.Error(),
		})
	} else {
		now := time.Now().UTC()
		doc.ExtractedTextKey = extractedKey
		doc.ExtractedAt = &now
		telemetry.Info("proofdoc.extracted", map[string]any{
			"proof_document_id": doc.ID,
			"offer_id":          offerID,
			"chars":             len(text),
		})
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return ProofDocument{}, err
	}
	return doc, nil
}

// Get returns a proof document by ID for a user.
func (s *Service) Get(ctx context.Context, userID, proofDocumentID string) (ProofDocument, error) {
	if userID == "" || proofDocumentID == "" {
		return ProofDocument{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, proofDocumentID)
}

// ListForOffer returns proof documents attached to an offer, newest first.
func (s *Service) ListForOffer(ctx context.Context, userID, offerID string, limit, offset int) ([]ProofDocument, error) {
	if userID == "" || offerID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByOffer(ctx, userID, offerID, limit, offset)
}

// OpenText opens the extracted text of a proof document for streaming.
func (s *Service) OpenText(ctx context.Context, userID, proofDocumentID string) (io.ReadCloser, error) {
	doc, err := s.Get(ctx, userID, proofDocumentID)
	if err != nil {
		return nil, err
	}
	if doc.ExtractedTextKey == "" {
		return nil, ErrNoExtractedText
	}
	return s.Store.Open(ctx, doc.ExtractedTextKey)
}
