package store

import (
	"context"

	"github.com/google/uuid"
)

// StoreProfileRepository defines persistence operations for store profiles
type StoreProfileRepository interface {
	// FindByID finds a profile by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StoreProfile, error)
	// FindByUserID finds the profile owned by a user
	FindByUserID(ctx context.Context, userID uuid.UUID) (*StoreProfile, error)
	// ExistsByUserID checks whether the user already owns a profile
	ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
	// CountByUserID counts profiles owned by a user
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	// Save creates or updates a profile
	Save(ctx context.Context, profile *StoreProfile) error
	// Delete deletes a profile
	Delete(ctx context.Context, id uuid.UUID) error
}
