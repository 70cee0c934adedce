package offers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"offerfit-backend/internal/offer"
)

func offerRowColumns() []string {
	return []string{"id", "user_id", "name", "config", "created_at", "updated_at"}
}

func TestPGRepoCreateOffer(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	o := Offer{
		ID:        "offer-1",
		UserID:    "user-1",
		Name:      "Agency retainer",
		Config:    completeConfig(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO offers").
		WithArgs(
			o.ID,
			o.UserID,
			o.Name,
			sqlmock.AnyArg(), // config
			o.CreatedAt,
			o.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), o); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("FROM offers").
		WithArgs("user-1", "missing").
		WillReturnRows(sqlmock.NewRows(offerRowColumns()))

	_, err = repo.GetByID(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScansConfig(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	payload, err := json.Marshal(completeConfig())
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}

	rows := sqlmock.NewRows(offerRowColumns()).
		AddRow("offer-1", "user-1", "Agency retainer", string(payload), now, now)
	mock.ExpectQuery("FROM offers").
		WithArgs("user-1", "offer-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "user-1", "offer-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Agency retainer" {
		t.Fatalf("expected name round trip, got %q", got.Name)
	}
	if got.Config.OfferType != offer.TypeConsulting {
		t.Fatalf("expected decoded offer_type consulting, got %q", got.Config.OfferType)
	}
	if got.Config.Pricing.RecurringTier != offer.Tier3KTo8K {
		t.Fatalf("expected decoded recurring tier, got %q", got.Config.Pricing.RecurringTier)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectExec("UPDATE offers").
		WithArgs("Renamed", sqlmock.AnyArg(), now, "user-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), Offer{
		ID:        "missing",
		UserID:    "user-1",
		Name:      "Renamed",
		Config:    completeConfig(),
		UpdatedAt: now,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteByUserCountsRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE offers").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("DeleteByUser: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 deleted, got %d", deleted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
