package forms

import (
	"strings"
	"time"

	"github.com/ruthvic2255/cycle-companion/internal/models"
	"github.com/ruthvic2255/cycle-companion/internal/types"
	"gorm.io/datatypes"
)

// Form keys used by the single-flight guard
const (
	FormProfile       = "profile"
	FormCycle         = "cycle"
	FormPhysicalData  = "physical_data"
	FormNotifications = "notifications"
)

// Notification defaults applied when a user has no settings row
const (
	DefaultDaysBeforePeriod   = 3
	DefaultEmailNotifications = true
)

// ProfileDraft is the editable profile form
type ProfileDraft struct {
	Name        string `json:"name" validate:"min=2"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	BloodGroup  string `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
}

// CycleDraft is the new cycle form
type CycleDraft struct {
	StartDate   string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string          `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	CycleLength types.FlexFloat `json:"cycle_length" validate:"omitempty,whole,min=1,max=365" swaggertype:"number"`
	Notes       string          `json:"notes" validate:"omitempty,max=1000"`
}

// PhysicalDataDraft is the physical data form. Every measure is optional.
type PhysicalDataDraft struct {
	HeightCM               types.FlexFloat `json:"height_cm" validate:"omitempty,gt=0" swaggertype:"number"`
	WeightKG               types.FlexFloat `json:"weight_kg" validate:"omitempty,gt=0" swaggertype:"number"`
	HemoglobinLevel        types.FlexFloat `json:"hemoglobin_level" validate:"omitempty,gt=0" swaggertype:"number"`
	BloodPressureSystolic  types.FlexFloat `json:"blood_pressure_systolic" validate:"omitempty,gt=0,whole,max=300" swaggertype:"integer"`
	BloodPressureDiastolic types.FlexFloat `json:"blood_pressure_diastolic" validate:"omitempty,gt=0,whole,max=300" swaggertype:"integer"`
	PainLevel              string          `json:"pain_level" validate:"omitempty,oneof=low medium high"`
}

// NotificationDraft is the notification settings form
type NotificationDraft struct {
	DaysBeforePeriod   int  `json:"days_before_period" validate:"min=1,max=14"`
	EmailNotifications bool `json:"email_notifications"`
}

// Normalize trims free-text inputs
func (d *ProfileDraft) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.DateOfBirth = strings.TrimSpace(d.DateOfBirth)
	d.BloodGroup = strings.TrimSpace(d.BloodGroup)
}

// Normalize trims free-text inputs
func (d *CycleDraft) Normalize() {
	d.StartDate = strings.TrimSpace(d.StartDate)
	d.EndDate = strings.TrimSpace(d.EndDate)
	d.Notes = strings.TrimSpace(d.Notes)
}

// Normalize trims free-text inputs
func (d *PhysicalDataDraft) Normalize() {
	d.PainLevel = strings.TrimSpace(d.PainLevel)
}

// Model builds the profile row for userID. Call only on a validated draft.
func (d ProfileDraft) Model(userID string) models.Profile {
	return models.Profile{
		ID:          userID,
		Name:        d.Name,
		DateOfBirth: datePtr(d.DateOfBirth),
		BloodGroup:  stringPtr(d.BloodGroup),
	}
}

// Model builds a new cycle row for userID. Call only on a validated draft.
func (d CycleDraft) Model(userID string) models.MenstrualCycle {
	start := datePtr(d.StartDate)
	return models.MenstrualCycle{
		UserID:      userID,
		StartDate:   *start,
		EndDate:     datePtr(d.EndDate),
		CycleLength: d.CycleLength.IntPtr(),
		Notes:       stringPtr(d.Notes),
	}
}

// Model builds a new physical data sample for userID, recorded now
func (d PhysicalDataDraft) Model(userID string) models.PhysicalData {
	return models.PhysicalData{
		UserID:                 userID,
		RecordedAt:             time.Now().UTC(),
		HeightCM:               d.HeightCM.Ptr(),
		WeightKG:               d.WeightKG.Ptr(),
		HemoglobinLevel:        d.HemoglobinLevel.Ptr(),
		BloodPressureSystolic:  d.BloodPressureSystolic.IntPtr(),
		BloodPressureDiastolic: d.BloodPressureDiastolic.IntPtr(),
		PainLevel:              stringPtr(d.PainLevel),
	}
}

// Model builds the settings row for userID
func (d NotificationDraft) Model(userID string) models.NotificationSettings {
	return models.NotificationSettings{
		UserID:             userID,
		DaysBeforePeriod:   d.DaysBeforePeriod,
		EmailNotifications: d.EmailNotifications,
	}
}

// NewProfileDraft seeds the form from a stored profile, or empty when p is nil
func NewProfileDraft(p *models.Profile) ProfileDraft {
	if p == nil {
		return ProfileDraft{}
	}
	return ProfileDraft{
		Name:        p.Name,
		DateOfBirth: FormatDate(p.DateOfBirth),
		BloodGroup:  stringValue(p.BloodGroup),
	}
}

// NewPhysicalDataDraft seeds the form from the latest sample, or empty when p is nil
func NewPhysicalDataDraft(p *models.PhysicalData) PhysicalDataDraft {
	if p == nil {
		return PhysicalDataDraft{}
	}
	return PhysicalDataDraft{
		HeightCM:               types.FlexFloatFrom(p.HeightCM),
		WeightKG:               types.FlexFloatFrom(p.WeightKG),
		HemoglobinLevel:        types.FlexFloatFrom(p.HemoglobinLevel),
		BloodPressureSystolic:  types.FlexFloatFromInt(p.BloodPressureSystolic),
		BloodPressureDiastolic: types.FlexFloatFromInt(p.BloodPressureDiastolic),
		PainLevel:              stringValue(p.PainLevel),
	}
}

// NewNotificationDraft seeds the form from stored settings, or the defaults when n is nil
func NewNotificationDraft(n *models.NotificationSettings) NotificationDraft {
	if n == nil {
		return NotificationDraft{
			DaysBeforePeriod:   DefaultDaysBeforePeriod,
			EmailNotifications: DefaultEmailNotifications,
		}
	}
	return NotificationDraft{
		DaysBeforePeriod:   n.DaysBeforePeriod,
		EmailNotifications: n.EmailNotifications,
	}
}

// FormatDate renders an optional stored date, empty when unset
func FormatDate(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return time.Time(*d).Format(DateLayout)
}

func datePtr(s string) *datatypes.Date {
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	d := datatypes.Date(t)
	return &d
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
