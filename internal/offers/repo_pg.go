package offers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"offerfit-backend/internal/offer"
)

// PGRepo implements Repo using Postgres. The configuration is stored as a
// single jsonb column; the engine never reads it from here directly.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new offer.
func (r *PGRepo) Create(ctx context.Context, o Offer) error {
	const query = `
INSERT INTO offers (id, user_id, name, config, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	payload, err := json.Marshal(o.Config)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		o.ID,
		o.UserID,
		o.Name,
		payload,
		o.CreatedAt,
		o.UpdatedAt,
	)
	return err
}

// GetByID fetches an offer by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, offerID string) (Offer, error) {
	const query = `
SELECT id, user_id, name, config, created_at, updated_at
FROM offers
WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
LIMIT 1`

	var o Offer
	var config sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID, offerID).Scan(
		&o.ID,
		&o.UserID,
		&o.Name,
		&config,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Offer{}, ErrNotFound
		}
		return Offer{}, err
	}
	if config.Valid {
		if err := json.Unmarshal([]byte(config.String), &o.Config); err != nil {
			o.Config = offer.Configuration{}
		}
	}
	return o, nil
}

// ListByUser lists offers ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Offer, error) {
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
SELECT id, user_id, name, config, created_at, updated_at
FROM offers
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Offer
	for rows.Next() {
		var o Offer
		var config sql.NullString
		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.Name,
			&config,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if config.Valid {
			if err := json.Unmarshal([]byte(config.String), &o.Config); err != nil {
				o.Config = offer.Configuration{}
			}
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Update replaces the name and configuration of an offer.
func (r *PGRepo) Update(ctx context.Context, o Offer) error {
	const query = `
UPDATE offers
SET name = $1, config = $2, updated_at = $3
WHERE user_id = $4 AND id = $5 AND deleted_at IS NULL`

	payload, err := json.Marshal(o.Config)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, o.Name, payload, o.UpdatedAt, o.UserID, o.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete soft-deletes an offer.
func (r *PGRepo) Delete(ctx context.Context, userID, offerID string) error {
	const query = `
UPDATE offers
SET deleted_at = now()
WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL`

	res, err := r.DB.ExecContext(ctx, query, userID, offerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUser soft-deletes every offer the user owns.
func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) (int, error) {
	const query = `
UPDATE offers
SET deleted_at = now()
WHERE user_id = $1 AND deleted_at IS NULL`

	res, err := r.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	deleted, _ := res.RowsAffected()
	return int(deleted), nil
}

var _ Repo = (*PGRepo)(nil)

// ClaimGuest reassigns every live offer from a guest identity to the
// authenticated user.
func (r *PGRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	const query = `
UPDATE offers
SET user_id = $1
WHERE user_id = $2 AND deleted_at IS NULL`

	res, err := r.DB.ExecContext(ctx, query, authedUserID, guestUserID)
	if err != nil {
		return 0, err
	}
	moved, _ := res.RowsAffected()
	return int(moved), nil
}
