package services

import (
	"context"
	"fmt"

	"github.com/ruthvic2255/cycle-companion/internal/models"
	"gorm.io/gorm"
)

// LatestPhysicalData returns the most recent sample of userID, or ErrNotFound
func LatestPhysicalData(ctx context.Context, db *gorm.DB, userID string) (*models.PhysicalData, error) {
	var sample models.PhysicalData
	err := tagged(quiet(db.WithContext(ctx)), "SELECT", "latest_physical_data").
		Where("user_id = ?", userID).
		Order("recorded_at DESC").
		Order("created_at DESC").
		Take(&sample).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &sample, nil
}

// CreatePhysicalData appends a sample
func CreatePhysicalData(ctx context.Context, db *gorm.DB, sample *models.PhysicalData) error {
	if sample.UserID == "" {
		return fmt.Errorf("physical data user id is required")
	}
	if err := tagged(db.WithContext(ctx), "INSERT", "create_physical_data").Create(sample).Error; err != nil {
		return fmt.Errorf("failed to create physical data: %w", err)
	}
	return nil
}
