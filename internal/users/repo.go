package users

import (
	"context"
	"errors"
)

// ErrNotFound indicates no user record exists for the id.
var ErrNotFound = errors.New("user not found")

// Repo persists login identities.
type Repo interface {
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	Delete(ctx context.Context, userID string) error
}
