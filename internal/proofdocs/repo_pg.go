package proofdocs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const proofDocumentColumns = "id, user_id, offer_id, file_name, mime_type, size_bytes, storage_key, extracted_text_key, extracted_at, created_at"

// PGRepo is a Postgres-backed proof document repository.
type PGRepo struct {
	DB *sql.DB
}

// NewPGRepo constructs a PGRepo.
func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db}
}

var _ Repo = (*PGRepo)(nil)

// Create inserts a proof document row.
func (r *PGRepo) Create(ctx context.Context, doc ProofDocument) error {
	query := `
		INSERT INTO proof_documents (id, user_id, offer_id, file_name, mime_type, size_bytes, storage_key, extracted_text_key, extracted_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.UserID,
		doc.OfferID,
		doc.FileName,
		doc.MimeType,
		doc.SizeBytes,
		doc.StorageKey,
		doc.ExtractedTextKey,
		doc.ExtractedAt,
		doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert proof document: %w", err)
	}
	return nil
}

// GetByID fetches a proof document owned by the user.
func (r *PGRepo) GetByID(ctx context.Context, userID, proofDocumentID string) (ProofDocument, error) {
	query := `
		SELECT ` + proofDocumentColumns + `
		FROM proof_documents
		WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	row := r.DB.QueryRowContext(ctx, query, userID, proofDocumentID)
	doc, err := scanProofDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProofDocument{}, ErrNotFound
		}
		return ProofDocument{}, fmt.Errorf("get proof document: %w", err)
	}
	return doc, nil
}

// ListByOffer returns proof documents for one offer, newest first.
func (r *PGRepo) ListByOffer(ctx context.Context, userID, offerID string, limit, offset int) ([]ProofDocument, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + proofDocumentColumns + `
		FROM proof_documents
		WHERE user_id = $1 AND offer_id = $2 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, offerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proof documents: %w", err)
	}
	defer rows.Close()

	docs := make([]ProofDocument, 0)
	for rows.Next() {
		doc, err := scanProofDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proof document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate proof documents: %w", err)
	}
	return docs, nil
}

// DeleteByUser soft deletes all proof documents owned by the user and
// reports how many rows were affected.
func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) (int, error) {
	query := `
		UPDATE proof_documents
		SET deleted_at = $1
		WHERE user_id = $2 AND deleted_at IS NULL
	`
	res, err := r.DB.ExecContext(ctx, query, time.Now().UTC(), userID)
	if err != nil {
		return 0, fmt.Errorf("delete proof documents: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete proof documents count: %w", err)
	}
	return int(affected), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProofDocument(row rowScanner) (ProofDocument, error) {
	var doc ProofDocument
	var storageKey sql.NullString
	var extractedTextKey sql.NullString
	var extractedAt sql.NullTime
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.OfferID,
		&doc.FileName,
		&doc.MimeType,
		&doc.SizeBytes,
		&storageKey,
		&extractedTextKey,
		&extractedAt,
		&doc.CreatedAt,
	)
	if err != nil {
		return ProofDocument{}, err
	}
	if storageKey.Valid {
		doc.StorageKey = storageKey.String
	}
	if extractedTextKey.Valid {
		doc.ExtractedTextKey = extractedTextKey.String
	}
	if extractedAt.Valid {
		t := extractedAt.Time
		doc.ExtractedAt = &t
	}
	return doc, nil
}

// ClaimGuest reassigns every live proof document from a guest identity to
// the authenticated user.
func (r *PGRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	query := `
		UPDATE proof_documents
		SET user_id = $1
		WHERE user_id = $2 AND deleted_at IS NULL
	`
	res, err := r.DB.ExecContext(ctx, query, authedUserID, guestUserID)
	if err != nil {
		return 0, fmt.Errorf("claim proof documents: %w", err)
	}
	moved, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("claim proof documents count: %w", err)
	}
	return int(moved), nil
}
