package snapshots

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const snapshotColumns = "id, user_id, offer_id, evaluation_id, ruleset_version, document, storage_key, size_bytes, created_at"

// Create inserts a snapshot.
func (r *PGRepo) Create(ctx context.Context, snapshot Snapshot) error {
	const query = `
INSERT INTO snapshots (
    id, user_id, offer_id, evaluation_id, ruleset_version, document, storage_key, size_bytes, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.UserID,
		snapshot.OfferID,
		snapshot.EvaluationID,
		snapshot.RulesetVersion,
		snapshot.Document,
		snapshot.StorageKey,
		snapshot.SizeBytes,
		snapshot.CreatedAt,
	)
	return err
}

// GetByID returns a snapshot by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, snapshotID string) (Snapshot, error) {
	const query = `
SELECT ` + snapshotColumns + `
FROM snapshots
WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
LIMIT 1`
	snapshot, err := scanSnapshot(r.DB.QueryRowContext(ctx, query, userID, snapshotID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, err
	}
	return snapshot, nil
}

// ListByUser lists snapshots ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + snapshotColumns + `
FROM snapshots
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, snapshot)
	}
	return out, rows.Err()
}

// DeleteByUser soft-deletes every snapshot the user owns.
func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) (int, error) {
	const query = `
UPDATE snapshots
SET deleted_at = now()
WHERE user_id = $1 AND deleted_at IS NULL`

	res, err := r.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	deleted, _ := res.RowsAffected()
	return int(deleted), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (Snapshot, error) {
	var snapshot Snapshot
	var document sql.NullString
	var storageKey sql.NullString
	if err := row.Scan(
		&snapshot.ID,
		&snapshot.UserID,
		&snapshot.OfferID,
		&snapshot.EvaluationID,
		&snapshot.RulesetVersion,
		&document,
		&storageKey,
		&snapshot.SizeBytes,
		&snapshot.CreatedAt,
	); err != nil {
		return Snapshot{}, err
	}
	if document.Valid {
		snapshot.Document = []byte(document.String)
	}
	if storageKey.Valid {
		snapshot.StorageKey = storageKey.String
	}
	return snapshot, nil
}

var _ Repo = (*PGRepo)(nil)

// ClaimGuest reassigns every live snapshot from a guest identity to the
// authenticated user.
func (r *PGRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	const query = `
UPDATE snapshots
SET user_id = $1
WHERE user_id = $2 AND deleted_at IS NULL`

	res, err := r.DB.ExecContext(ctx, query, authedUserID, guestUserID)
	if err != nil {
		return 0, err
	}
	moved, _ := res.RowsAffected()
	return int(moved), nil
}
