package services

import (
	"context"
	"fmt"

	"github.com/ruthvic2255/cycle-companion/internal/models"
	"gorm.io/gorm"
)

// catalogOrder lists rows without a display order last
const catalogOrder = "CASE WHEN display_order IS NULL THEN 1 ELSE 0 END, display_order ASC, created_at ASC, id ASC"

func listActive[T any](ctx context.Context, db *gorm.DB, op string) ([]T, error) {
	rows := make([]T, 0)
	err := tagged(db.WithContext(ctx), "SELECT", op).
		Where("is_active = ?", true).
		Order(catalogOrder).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListExerciseVideos returns active exercise videos in display order
func ListExerciseVideos(ctx context.Context, db *gorm.DB) ([]models.ExerciseVideo, error) {
	rows, err := listActive[models.ExerciseVideo](ctx, db, "list_exercise_videos")
	if err != nil {
		return nil, fmt.Errorf("failed to list exercise videos: %w", err)
	}
	return rows, nil
}

// ListFoodVideos returns active food videos in display order
func ListFoodVideos(ctx context.Context, db *gorm.DB) ([]models.FoodVideo, error) {
	rows, err := listActive[models.FoodVideo](ctx, db, "list_food_videos")
	if err != nil {
		return nil, fmt.Errorf("failed to list food videos: %w", err)
	}
	return rows, nil
}

// ListSuggestedFoods returns active suggested foods in display order
func ListSuggestedFoods(ctx context.Context, db *gorm.DB) ([]models.SuggestedFood, error) {
	rows, err := listActive[models.SuggestedFood](ctx, db, "list_suggested_foods")
	if err != nil {
		return nil, fmt.Errorf("failed to list suggested foods: %w", err)
	}
	return rows, nil
}
