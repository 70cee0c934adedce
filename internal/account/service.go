package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"offerfit-backend/internal/shared/telemetry"
)

// UserData is the slice of a domain repo the account service drives: bulk
// reassignment on guest claim and bulk removal on account deletion.
type UserData interface {
	ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error)
	DeleteByUser(ctx context.Context, userID string) (int, error)
}

// UsageStore removes a user's quota row.
type UsageStore interface {
	Delete(ctx context.Context, userID string) error
}

// Identity removes the login record.
type Identity interface {
	Delete(ctx context.Context, userID string) error
}

// Service migrates and deletes everything a user owns across the domain
// stores. When DB is set the writes run as a single transaction; otherwise
// they fan out store by store.
type Service struct {
	Offers      UserData
	Evaluations UserData
	Snapshots   UserData
	ProofDocs   UserData
	Usage       UsageStore
	Users       Identity
	DB          *sql.DB
}

type ClaimResult struct {
	MigratedOffers         int `json:"migratedOffers"`
	MigratedEvaluations    int `json:"migratedEvaluations"`
	MigratedSnapshots      int `json:"migratedSnapshots"`
	MigratedProofDocuments int `json:"migratedProofDocuments"`
}

type DeleteResult struct {
	DeletedOffers         int `json:"deletedOffers"`
	DeletedEvaluations    int `json:"deletedEvaluations"`
	DeletedSnapshots      int `json:"deletedSnapshots"`
	DeletedProofDocuments int `json:"deletedProofDocuments"`
}

// ClaimGuest reassigns every row owned by the guest identity to the
// authenticated user.
func (s *Service) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (ClaimResult, error) {
	if strings.TrimSpace(guestUserID) == "" || strings.TrimSpace(authedUserID) == "" {
		return ClaimResult{}, errors.New("guestUserID and authedUserID are required")
	}
	if s.Offers == nil || s.Evaluations == nil || s.Snapshots == nil || s.ProofDocs == nil {
		return ClaimResult{}, errors.New("missing dependencies")
	}

	if s.DB != nil {
		return s.claimWithTx(ctx, guestUserID, authedUserID)
	}

	var result ClaimResult
	var err error
	if result.MigratedOffers, err = s.Offers.ClaimGuest(ctx, guestUserID, authedUserID); err != nil {
		return ClaimResult{}, err
	}
	if result.MigratedEvaluations, err = s.Evaluations.ClaimGuest(ctx, guestUserID, authedUserID); err != nil {
		return ClaimResult{}, err
	}
	if result.MigratedSnapshots, err = s.Snapshots.ClaimGuest(ctx, guestUserID, authedUserID); err != nil {
		return ClaimResult{}, err
	}
	if result.MigratedProofDocuments, err = s.ProofDocs.ClaimGuest(ctx, guestUserID, authedUserID); err != nil {
		return ClaimResult{}, err
	}

	telemetry.Info("account.guest_claimed", map[string]any{
		"user_id":     authedUserID,
		"offers":      result.MigratedOffers,
		"evaluations": result.MigratedEvaluations,
	})
	return result, nil
}

func (s *Service) claimWithTx(ctx context.Context, guestUserID, authedUserID string) (ClaimResult, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return ClaimResult{}, err
	}
	defer tx.Rollback()

	var result ClaimResult
	for _, step := range []struct {
		table string
		dst   *int
	}{
		{"offers", &result.MigratedOffers},
		{"evaluations", &result.MigratedEvaluations},
		{"snapshots", &result.MigratedSnapshots},
		{"proof_documents", &result.MigratedProofDocuments},
	} {
		res, err := tx.ExecContext(ctx,
			`UPDATE `+step.table+` SET user_id = $1 WHERE user_id = $2 AND deleted_at IS NULL`,
			authedUserID, guestUserID)
		if err != nil {
			return ClaimResult{}, err
		}
		moved, _ := res.RowsAffected()
		*step.dst = int(moved)
	}

	if err := tx.Commit(); err != nil {
		return ClaimResult{}, err
	}

	telemetry.Info("account.guest_claimed", map[string]any{
		"user_id":     authedUserID,
		"offers":      result.MigratedOffers,
		"evaluations": result.MigratedEvaluations,
	})
	return result, nil
}

// DeleteAccount removes everything the user owns: offers, evaluations,
// snapshots, proof documents, the usage row, and the login record.
func (s *Service) DeleteAccount(ctx context.Context, userID string) (DeleteResult, error) {
	if strings.TrimSpace(userID) == "" {
		return DeleteResult{}, errors.New("userID is required")
	}
	if s.Offers == nil || s.Evaluations == nil || s.Snapshots == nil || s.ProofDocs == nil {
		return DeleteResult{}, errors.New("missing dependencies")
	}

	if s.DB != nil {
		return s.deleteWithTx(ctx, userID)
	}

	var result DeleteResult
	var err error
	if result.DeletedOffers, err = s.Offers.DeleteByUser(ctx, userID); err != nil {
		return DeleteResult{}, err
	}
	if result.DeletedEvaluations, err = s.Evaluations.DeleteByUser(ctx, userID); err != nil {
		return DeleteResult{}, err
	}
	if result.DeletedSnapshots, err = s.Snapshots.DeleteByUser(ctx, userID); err != nil {
		return DeleteResult{}, err
	}
	if result.DeletedProofDocuments, err = s.ProofDocs.DeleteByUser(ctx, userID); err != nil {
		return DeleteResult{}, err
	}
	if s.Usage != nil {
		if err := s.Usage.Delete(ctx, userID); err != nil {
			return DeleteResult{}, err
		}
	}
	if s.Users != nil {
		if err := s.Users.Delete(ctx, userID); err != nil {
			return DeleteResult{}, err
		}
	}

	telemetry.Info("account.deleted", map[string]any{
		"user_id":     userID,
		"offers":      result.DeletedOffers,
		"evaluations": result.DeletedEvaluations,
	})
	return result, nil
}

func (s *Service) deleteWithTx(ctx context.Context, userID string) (DeleteResult, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return DeleteResult{}, err
	}
	defer tx.Rollback()

	var result DeleteResult
	for _, step := range []struct {
		table string
		dst   *int
	}{
		{"offers", &result.DeletedOffers},
		{"evaluations", &result.DeletedEvaluations},
		{"snapshots", &result.DeletedSnapshots},
		{"proof_documents", &result.DeletedProofDocuments},
	} {
		res, err := tx.ExecContext(ctx,
			`UPDATE `+step.table+` SET deleted_at = now() WHERE user_id = $1 AND deleted_at IS NULL`,
			userID)
		if err != nil {
			return DeleteResult{}, err
		}
		deleted, _ := res.RowsAffected()
		*step.dst = int(deleted)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM usage WHERE user_id = $1`, userID); err != nil {
		return DeleteResult{}, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return DeleteResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return DeleteResult{}, err
	}

	telemetry.Info("account.deleted", map[string]any{
		"user_id":     userID,
		"offers":      result.DeletedOffers,
		"evaluations": result.DeletedEvaluations,
	})
	return result, nil
}
