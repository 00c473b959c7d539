package models

import (
	"time"

	"gorm.io/gorm"
)

// ExerciseVideo is an admin-curated workout video
type ExerciseVideo struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id" yaml:"id,omitempty"`
	Title        string    `gorm:"size:255;not null" json:"title" yaml:"title"`
	Description  *string   `json:"description" yaml:"description,omitempty"`
	YoutubeURL   string    `gorm:"size:512;not null" json:"youtube_url" yaml:"youtube_url"`
	DisplayOrder *int      `gorm:"index" json:"display_order" yaml:"display_order,omitempty"`
	IsActive     *bool     `gorm:"default:true" json:"is_active" yaml:"is_active,omitempty"`
	CreatedAt    time.Time `json:"created_at" yaml:"-"`
}

// FoodVideo is an admin-curated nutrition video
type FoodVideo struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id" yaml:"id,omitempty"`
	Title        string    `gorm:"size:255;not null" json:"title" yaml:"title"`
	Description  *string   `json:"description" yaml:"description,omitempty"`
	YoutubeURL   string    `gorm:"size:512;not null" json:"youtube_url" yaml:"youtube_url"`
	DisplayOrder *int      `gorm:"index" json:"display_order" yaml:"display_order,omitempty"`
	IsActive     *bool     `gorm:"default:true" json:"is_active" yaml:"is_active,omitempty"`
	CreatedAt    time.Time `json:"created_at" yaml:"-"`
}

// SuggestedFood is an admin-curated food suggestion
type SuggestedFood struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id" yaml:"id,omitempty"`
	Name         string    `gorm:"size:255;not null" json:"name" yaml:"name"`
	Category     *string   `gorm:"size:128" json:"category" yaml:"category,omitempty"`
	Description  *string   `json:"description" yaml:"description,omitempty"`
	Benefits     *string   `json:"benefits" yaml:"benefits,omitempty"`
	DisplayOrder *int      `gorm:"index" json:"display_order" yaml:"display_order,omitempty"`
	IsActive     *bool     `gorm:"default:true" json:"is_active" yaml:"is_active,omitempty"`
	CreatedAt    time.Time `json:"created_at" yaml:"-"`
}

// TableName overrides the table name for ExerciseVideo
func (ExerciseVideo) TableName() string {
	return "exercise_videos"
}

// TableName overrides the table name for FoodVideo
func (FoodVideo) TableName() string {
	return "food_videos"
}

// TableName overrides the table name for SuggestedFood
func (SuggestedFood) TableName() string {
	return "suggested_foods"
}

func (v *ExerciseVideo) BeforeCreate(tx *gorm.DB) error {
	v.ID = ensureID(v.ID)
	return nil
}

func (v *FoodVideo) BeforeCreate(tx *gorm.DB) error {
	v.ID = ensureID(v.ID)
	return nil
}

func (f *SuggestedFood) BeforeCreate(tx *gorm.DB) error {
	f.ID = ensureID(f.ID)
	return nil
}

// All lists every model for migrations and schema inspection
func All() []interface{} {
	return []interface{}{
		&Profile{},
		&MenstrualCycle{},
		&PhysicalData{},
		&NotificationSettings{},
		&ExerciseVideo{},
		&FoodVideo{},
		&SuggestedFood{},
	}
}
