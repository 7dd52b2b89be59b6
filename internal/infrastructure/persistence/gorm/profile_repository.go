package gorm

import (
	"context"
	"errors"

	"github.com/mealwise/core/internal/domain/profile"
	"github.com/mealwise/core/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository implements the profile repository interface using GORM
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) outbound.ProfileRepository {
	return &ProfileRepository{db: db}
}

// Find returns the stored partial for userID, or nil when there is none
func (r *ProfileRepository) Find(ctx context.Context, userID string) (profile.Document, error) {
	var model ProfileModel

	result := r.db.WithContext(ctx).First(&model, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return profile.Document(model.Data), nil
}

// Save inserts or replaces the stored partial
func (r *ProfileRepository) Save(ctx context.Context, userID string, doc profile.Document) error {
	model := ProfileModel{
		UserID: userID,
		Data:   JSONField(doc),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&model).Error
}

// Delete removes the stored partial; deleting a missing record is not an error
func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Delete(&ProfileModel{}, "user_id = ?", userID).Error
}
