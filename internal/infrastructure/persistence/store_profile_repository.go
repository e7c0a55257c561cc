package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/store"
	"gorm.io/gorm"
)

// GormStoreProfileRepository implements StoreProfileRepository using GORM
type GormStoreProfileRepository struct {
	db *gorm.DB
}

// NewGormStoreProfileRepository creates a new GormStoreProfileRepository
func NewGormStoreProfileRepository(db *gorm.DB) *GormStoreProfileRepository {
	return &GormStoreProfileRepository{db: db}
}

// FindByID finds a profile by ID
func (r *GormStoreProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.StoreProfile, error) {
	var profile store.StoreProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// FindByUserID finds the profile owned by a user
func (r *GormStoreProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*store.StoreProfile, error) {
	var profile store.StoreProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// ExistsByUserID checks whether the user already owns a profile
func (r *GormStoreProfileRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	count, err := r.CountByUserID(ctx, userID)
	return count > 0, err
}

// CountByUserID counts profiles owned by a user
func (r *GormStoreProfileRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&store.StoreProfile{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// Save creates or updates a profile
func (r *GormStoreProfileRepository) Save(ctx context.Context, profile *store.StoreProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// Delete deletes a profile by ID
func (r *GormStoreProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&store.StoreProfile{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormStoreProfileRepository implements StoreProfileRepository
var _ store.StoreProfileRepository = (*GormStoreProfileRepository)(nil)
