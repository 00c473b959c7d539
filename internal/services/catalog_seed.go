// catalog_seed.go
//
// Cycle Companion, a menstrual cycle tracking and wellness data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of cycle-companion.
// cycle-companion is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// cycle-companion is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with cycle-companion.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ruthvic2255/cycle-companion/internal/models"
	"gorm.io/gorm"
)

// Catalog is the operator-maintained content set
type Catalog struct {
	ExerciseVideos []models.ExerciseVideo `yaml:"exercise_videos" json:"exercise_videos"`
	FoodVideos     []models.FoodVideo     `yaml:"food_videos" json:"food_videos"`
	SuggestedFoods []models.SuggestedFood `yaml:"suggested_foods" json:"suggested_foods"`
}

// SeedResult counts the rows a seed run touched
type SeedResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// seedPlan tells seedRows how to match and complete one catalog model
type seedPlan[T any] struct {
	column string
	key    func(*T) string
	setID  func(*T, string)
	active func(*T) **bool
}

// SeedCatalog upserts every catalog row in one transaction. Videos match on
// title, foods on name. A seeded row replaces every field of its match.
func SeedCatalog(ctx context.Context, db *gorm.DB, catalog Catalog) (SeedResult, error) {
	var result SeedResult

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedRows(tx, catalog.ExerciseVideos, &result, seedPlan[models.ExerciseVideo]{
			column: "title",
			key:    func(v *models.ExerciseVideo) string { return v.Title },
			setID:  func(v *models.ExerciseVideo, id string) { v.ID = id },
			active: func(v *models.ExerciseVideo) **bool { return &v.IsActive },
		}); err != nil {
			return fmt.Errorf("exercise videos: %w", err)
		}
		if err := seedRows(tx, catalog.FoodVideos, &result, seedPlan[models.FoodVideo]{
			column: "title",
			key:    func(v *models.FoodVideo) string { return v.Title },
			setID:  func(v *models.FoodVideo, id string) { v.ID = id },
			active: func(v *models.FoodVideo) **bool { return &v.IsActive },
		}); err != nil {
			return fmt.Errorf("food videos: %w", err)
		}
		if err := seedRows(tx, catalog.SuggestedFoods, &result, seedPlan[models.SuggestedFood]{
			column: "name",
			key:    func(f *models.SuggestedFood) string { return f.Name },
			setID:  func(f *models.SuggestedFood, id string) { f.ID = id },
			active: func(f *models.SuggestedFood) **bool { return &f.IsActive },
		}); err != nil {
			return fmt.Errorf("suggested foods: %w", err)
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, fmt.Errorf("failed to seed catalog: %w", err)
	}
	return result, nil
}

func seedRows[T any](tx *gorm.DB, rows []T, result *SeedResult, plan seedPlan[T]) error {
	for i := range rows {
		row := &rows[i]
		key := plan.key(row)
		if key == "" {
			return errors.New("row without " + plan.column)
		}
		if active := plan.active(row); *active == nil {
			on := true
			*active = &on
		}

		var ids []string
		err := quiet(tx).Model(new(T)).
			Where(plan.column+" = ?", key).
			Limit(1).
			Pluck("id", &ids).Error
		if err != nil {
			return fmt.Errorf("%s %q: %w", plan.column, key, err)
		}

		if len(ids) == 0 {
			if err := tagged(tx, "INSERT", "seed_catalog").Create(row).Error; err != nil {
				return fmt.Errorf("%s %q: %w", plan.column, key, err)
			}
			result.Created++
			continue
		}

		plan.setID(row, ids[0])
		err = tagged(tx, "UPDATE", "seed_catalog").Model(row).
			Select("*").
			Omit("id", "created_at").
			Updates(row).Error
		if err != nil {
			return fmt.Errorf("%s %q: %w", plan.column, key, err)
		}
		result.Updated++
	}
	return nil
}
