package services

import (
	"context"
	"fmt"

	"github.com/ruthvic2255/cycle-companion/internal/models"
	"gorm.io/gorm"
)

// ListCycles returns every cycle of userID, most recent start first
func ListCycles(ctx context.Context, db *gorm.DB, userID string) ([]models.MenstrualCycle, error) {
	cycles := make([]models.MenstrualCycle, 0)
	err := tagged(db.WithContext(ctx), "SELECT", "list_cycles").
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Order("created_at DESC").
		Find(&cycles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}
	return cycles, nil
}

// CreateCycle appends a cycle record
func CreateCycle(ctx context.Context, db *gorm.DB, cycle *models.MenstrualCycle) error {
	if cycle.UserID == "" {
		return fmt.Errorf("cycle user id is required")
	}
	if err := tagged(db.WithContext(ctx), "INSERT", "create_cycle").Create(cycle).Error; err != nil {
		return fmt.Errorf("failed to create cycle: %w", err)
	}
	return nil
}
