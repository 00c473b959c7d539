package services

import (
	"context"
	"fmt"

	"github.com/ruthvic2255/cycle-companion/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetProfile returns the profile whose id is userID, or ErrNotFound
func GetProfile(ctx context.Context, db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := tagged(quiet(db.WithContext(ctx)), "SELECT", "get_profile").
		Where("id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

// UpsertProfile inserts the profile or overwrites the editable fields of the existing row
func UpsertProfile(ctx context.Context, db *gorm.DB, profile *models.Profile) error {
	if profile.ID == "" {
		return fmt.Errorf("profile id is required")
	}
	err := tagged(db.WithContext(ctx), "INSERT", "upsert_profile").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "date_of_birth", "blood_group", "updated_at"}),
		}).
		Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
