package services

import (
	"context"
	"fmt"

	"github.com/ruthvic2255/cycle-companion/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetNotificationSettings returns the settings row of userID, or ErrNotFound
func GetNotificationSettings(ctx context.Context, db *gorm.DB, userID string) (*models.NotificationSettings, error) {
	var settings models.NotificationSettings
	err := tagged(quiet(db.WithContext(ctx)), "SELECT", "get_notification_settings").
		Where("user_id = ?", userID).
		Take(&settings).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &settings, nil
}

// UpsertNotificationSettings keeps exactly one row per user holding the latest values
func UpsertNotificationSettings(ctx context.Context, db *gorm.DB, settings *models.NotificationSettings) error {
	if settings.UserID == "" {
		return fmt.Errorf("notification settings user id is required")
	}
	err := tagged(db.WithContext(ctx), "INSERT", "upsert_notification_settings").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"days_before_period", "email_notifications", "updated_at"}),
		}).
		Create(settings).Error
	if err != nil {
		return fmt.Errorf("failed to upsert notification settings: %w", err)
	}
	return nil
}
