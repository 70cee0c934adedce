package offers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"offerfit-backend/internal/offer"
)

// Service contains business logic for stored offers.
type Service struct {
	Repo Repo
}

// Create validates and stores a new offer configuration. Partial
// configurations are allowed; out-of-domain values are not.
func (s *Service) Create(ctx context.Context, userID, name string, cfg offer.Configuration) (Offer, error) {
	if userID == "" {
		return Offer{}, errors.New("user id required")
	}
	if err := cfg.Validate(); err != nil {
		return Offer{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	now := time.Now().UTC()
	o := Offer{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      normalizeName(name),
		Config:    cfg,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, o); err != nil {
		return Offer{}, err
	}
	return o, nil
}

// Get returns one offer for a user.
func (s *Service) Get(ctx context.Context, userID, offerID string) (Offer, error) {
	if userID == "" || offerID == "" {
		return Offer{}, errors.New("user id and offer id required")
	}
	return s.Repo.GetByID(ctx, userID, offerID)
}

// List returns offers for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Offer, error) {
	if userID == "" {
		return nil, errors.New("user id required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Update replaces the name and configuration of an existing offer.
func (s *Service) Update(ctx context.Context, userID, offerID, name string, cfg offer.Configuration) (Offer, error) {
	if userID == "" || offerID == "" {
		return Offer{}, errors.New("user id and offer id required")
	}
	if err := cfg.Validate(); err != nil {
		return Offer{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	existing, err := s.Repo.GetByID(ctx, userID, offerID)
	if err != nil {
		return Offer{}, err
	}

	existing.Name = normalizeName(name)
	existing.Config = cfg
	existing.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, existing); err != nil {
		return Offer{}, err
	}
	return existing, nil
}

// Delete removes one offer for a user.
func (s *Service) Delete(ctx context.Context, userID, offerID string) error {
	if userID == "" || offerID == "" {
		return errors.New("user id and offer id required")
	}
	return s.Repo.Delete(ctx, userID, offerID)
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Untitled offer"
	}
	const maxNameLen = 120
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	return name
}
