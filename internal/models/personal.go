package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Pain levels accepted for a physical data sample
const (
	PainLow    = "low"
	PainMedium = "medium"
	PainHigh   = "high"
)

// Profile is the one-per-user profile row. ID equals the auth identity.
type Profile struct {
	ID          string          `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	DateOfBirth *datatypes.Date `json:"date_of_birth"`
	BloodGroup  *string         `gorm:"size:3" json:"blood_group"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MenstrualCycle is an append-only cycle record
type MenstrualCycle struct {
	ID          string          `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      string          `gorm:"type:char(36);not null;index:idx_cycles_user_start" json:"user_id"`
	StartDate   datatypes.Date  `gorm:"not null;index:idx_cycles_user_start" json:"start_date"`
	EndDate     *datatypes.Date `json:"end_date"`
	CycleLength *int            `json:"cycle_length"`
	Notes       *string         `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PhysicalData is one point-in-time health sample
type PhysicalData struct {
	ID                     string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID                 string    `gorm:"type:char(36);not null;index:idx_physical_user_recorded" json:"user_id"`
	RecordedAt             time.Time `gorm:"not null;index:idx_physical_user_recorded" json:"recorded_at"`
	HeightCM               *float64  `json:"height_cm"`
	WeightKG               *float64  `json:"weight_kg"`
	HemoglobinLevel        *float64  `json:"hemoglobin_level"`
	BloodPressureSystolic  *int      `json:"blood_pressure_systolic"`
	BloodPressureDiastolic *int      `json:"blood_pressure_diastolic"`
	PainLevel              *string   `gorm:"size:16" json:"pain_level"`
	CreatedAt              time.Time `json:"created_at"`
}

// NotificationSettings is the single settings row per user. Defaults live in
// the settings form, not the column, so a saved false or zero is kept.
type NotificationSettings struct {
	ID                   string     `gorm:"type:char(36);primaryKey" json:"id"`
	UserID               string     `gorm:"type:char(36);not null;uniqueIndex" json:"user_id"`
	DaysBeforePeriod     int        `gorm:"not null" json:"days_before_period"`
	EmailNotifications   bool       `gorm:"not null" json:"email_notifications"`
	LastNotificationSent *time.Time `json:"last_notification_sent"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// TableName overrides the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}

// TableName overrides the table name for MenstrualCycle
func (MenstrualCycle) TableName() string {
	return "menstrual_cycles"
}

// TableName overrides the table name for PhysicalData
func (PhysicalData) TableName() string {
	return "physical_data"
}

// TableName overrides the table name for NotificationSettings
func (NotificationSettings) TableName() string {
	return "notification_settings"
}

func (c *MenstrualCycle) BeforeCreate(tx *gorm.DB) error {
	c.ID = ensureID(c.ID)
	return nil
}

func (p *PhysicalData) BeforeCreate(tx *gorm.DB) error {
	p.ID = ensureID(p.ID)
	if p.RecordedAt.IsZero() {
		p.RecordedAt = time.Now().UTC()
	}
	return nil
}

func (n *NotificationSettings) BeforeCreate(tx *gorm.DB) error {
	n.ID = ensureID(n.ID)
	return nil
}

func ensureID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
