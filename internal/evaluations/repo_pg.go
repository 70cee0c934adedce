package evaluations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"offerfit-backend/internal/engine"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const evaluationColumns = `id, offer_id, user_id, config, ruleset_version, prompt_version, provider, model,
       status, result, phrased, prompt_hash, error_code, error_message, error_retryable, phrased_at,
       created_at, updated_at`

// Create inserts a new evaluation with its deterministic result.
func (r *PGRepo) Create(ctx context.Context, ev Evaluation) error {
	const query = `
INSERT INTO evaluations (
	id, offer_id, user_id, config, ruleset_version, prompt_version, provider, model, status, result, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	configPayload, err := json.Marshal(ev.Config)
	if err != nil {
		return err
	}
	var resultPayload any
	if ev.Result != nil {
		resultPayload, err = json.Marshal(ev.Result)
		if err != nil {
			return err
		}
	}
	_, err = r.DB.ExecContext(ctx, query,
		ev.ID,
		ev.OfferID,
		ev.UserID,
		configPayload,
		ev.RulesetVersion,
		ev.PromptVersion,
		ev.Provider,
		ev.Model,
		ev.Status,
		resultPayload,
		ev.CreatedAt,
	)
	return err
}

// GetByID returns an evaluation by ID.
func (r *PGRepo) GetByID(ctx context.Context, evaluationID string) (Evaluation, error) {
	query := `
SELECT ` + evaluationColumns + `
FROM evaluations
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`

	ev, err := scanEvaluation(r.DB.QueryRowContext(ctx, query, evaluationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Evaluation{}, ErrNotFound
		}
		return Evaluation{}, err
	}
	return ev, nil
}

// ListByUser lists evaluations for a user ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Evaluation, error) {
	limit, offset = clampPage(limit, offset)
	query := `
SELECT ` + evaluationColumns + `
FROM evaluations
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	return r.list(ctx, query, userID, limit, offset)
}

// ListByOffer lists evaluations of one offer ordered newest-first.
func (r *PGRepo) ListByOffer(ctx context.Context, userID, offerID string, limit, offset int) ([]Evaluation, error) {
	limit, offset = clampPage(limit, offset)
	query := `
SELECT ` + evaluationColumns + `
FROM evaluations
WHERE user_id = $1 AND offer_id = $2 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $3 OFFSET $4`

	return r.list(ctx, query, userID, offerID, limit, offset)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (r *PGRepo) list(ctx context.Context, query string, args ...any) ([]Evaluation, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Evaluation
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// UpdatePhrasing applies a phrasing-pass update. Nil pointer fields keep the
// stored value; empty-string error pointers clear the column.
func (r *PGRepo) UpdatePhrasing(ctx context.Context, update PhrasingUpdate) error {
	const query = `
UPDATE evaluations
SET status = $2,
    phrased = COALESCE($3::jsonb, phrased),
    prompt_hash = COALESCE($4::text, prompt_hash),
    error_code = NULLIF(COALESCE($5::text, error_code), ''),
    error_message = NULLIF(COALESCE($6::text, error_message), ''),
    error_retryable = CASE
        WHEN $7::boolean IS NOT NULL THEN $7::boolean
        ELSE error_retryable
    END,
    phrased_at = CASE
        WHEN $8::timestamptz IS NOT NULL THEN $8::timestamptz
        ELSE phrased_at
    END,
    updated_at = now()
WHERE id = $1::uuid AND deleted_at IS NULL`

	var phrasedPayload any
	if update.Phrased != nil {
		payload, err := json.Marshal(update.Phrased)
		if err != nil {
			return err
		}
		phrasedPayload = payload
	}

	res, err := r.DB.ExecContext(ctx, query,
		update.ID,
		update.Status,
		phrasedPayload,
		update.PromptHash,
		update.ErrorCode,
		update.ErrorMessage,
		update.ErrorRetryable,
		update.PhrasedAt,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUser soft-deletes every evaluation owned by a user and reports how
// many rows were touched.
func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) (int, error) {
	const query = `
UPDATE evaluations
SET deleted_at = now(),
    updated_at = now()
WHERE user_id = $1 AND deleted_at IS NULL`

	res, err := r.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

var _ Repo = (*PGRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(row rowScanner) (Evaluation, error) {
	var ev Evaluation
	var config sql.NullString
	var promptVersion sql.NullString
	var provider sql.NullString
	var model sql.NullString
	var result sql.NullString
	var phrased sql.NullString
	var promptHash sql.NullString
	var errorCode sql.NullString
	var errorMessage sql.NullString
	var errorRetryable sql.NullBool
	var phrasedAt sql.NullTime

	err := row.Scan(
		&ev.ID,
		&ev.OfferID,
		&ev.UserID,
		&config,
		&ev.RulesetVersion,
		&promptVersion,
		&provider,
		&model,
		&ev.Status,
		&result,
		&phrased,
		&promptHash,
		&errorCode,
		&errorMessage,
		&errorRetryable,
		&phrasedAt,
		&ev.CreatedAt,
		&ev.UpdatedAt,
	)
	if err != nil {
		return Evaluation{}, err
	}
	if config.Valid {
		if err := json.Unmarshal([]byte(config.String), &ev.Config); err != nil {
			return Evaluation{}, err
		}
	}
	if result.Valid {
		ev.Result = &engine.Result{}
		if err := json.Unmarshal([]byte(result.String), ev.Result); err != nil {
			ev.Result = nil
		}
	}
	if phrased.Valid {
		if err := json.Unmarshal([]byte(phrased.String), &ev.Phrased); err != nil {
			ev.Phrased = nil
		}
	}
	if promptVersion.Valid {
		ev.PromptVersion = promptVersion.String
	}
	if provider.Valid {
		ev.Provider = provider.String
	}
	if model.Valid {
		ev.Model = model.String
	}
	if promptHash.Valid {
		ev.PromptHash = promptHash.String
	}
	if errorCode.Valid {
		ev.ErrorCode = errorCode.String
	}
	if errorMessage.Valid {
		ev.ErrorMessage = &errorMessage.String
	}
	if errorRetryable.Valid {
		ev.ErrorRetryable = errorRetryable.Bool
	}
	if phrasedAt.Valid {
		ev.PhrasedAt = &phrasedAt.Time
	}
	return ev, nil
}

// ClaimGuest reassigns every live evaluation from a guest identity to the
// authenticated user.
func (r *PGRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	const query = `
UPDATE evaluations
SET user_id = $1,
    updated_at = now()
WHERE user_id = $2 AND deleted_at IS NULL`

	res, err := r.DB.ExecContext(ctx, query, authedUserID, guestUserID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
