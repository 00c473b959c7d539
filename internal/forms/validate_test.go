package forms

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ruthvic2255/cycle-companion/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProfile(t *testing.T) {
	cases := []struct {
		name    string
		draft   ProfileDraft
		field   string
		message string
	}{
		{"valid", ProfileDraft{Name: "Asha", DateOfBirth: "1995-04-12", BloodGroup: "AB-"}, "", ""},
		{"name only", ProfileDraft{Name: "Al"}, "", ""},
		{"short name", ProfileDraft{Name: "A"}, "name", "Name must be at least 2 characters"},
		{"empty name", ProfileDraft{}, "name", "Name must be at least 2 characters"},
		{"bad dob", ProfileDraft{Name: "Asha", DateOfBirth: "12/04/1995"}, "date_of_birth", "Date of birth must be a valid date (YYYY-MM-DD)"},
		{"bad blood group", ProfileDraft{Name: "Asha", BloodGroup: "C+"}, "blood_group", "Blood group must be one of: A+, A-, B+, B-, AB+, AB-, O+, O-"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verr := Validate(tc.draft)
			if tc.field == "" {
				assert.Nil(t, verr)
				return
			}
			require.NotNil(t, verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.message, verr.Message)
		})
	}
}

func TestValidateReportsFirstViolationOnly(t *testing.T) {
	verr := Validate(ProfileDraft{Name: "A", BloodGroup: "Z"})
	require.NotNil(t, verr)
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, "min", verr.Rule)
}

func TestValidateCycle(t *testing.T) {
	cases := []struct {
		name  string
		draft CycleDraft
		field string
		rule  string
	}{
		{"start only", CycleDraft{StartDate: "2024-01-01"}, "", ""},
		{"full", CycleDraft{StartDate: "2024-01-01", EndDate: "2024-01-05", CycleLength: types.NewFlexFloat(28), Notes: "ok"}, "", ""},
		{"same day", CycleDraft{StartDate: "2024-01-01", EndDate: "2024-01-01"}, "", ""},
		{"missing start", CycleDraft{}, "start_date", "required"},
		{"bad start", CycleDraft{StartDate: "2024-13-01"}, "start_date", "datetime"},
		{"end before start", CycleDraft{StartDate: "2024-01-05", EndDate: "2024-01-01"}, "end_date", "endafterstart"},
		{"year long", CycleDraft{StartDate: "2024-01-01", EndDate: "2025-01-01"}, "", ""},
		{"over a year", CycleDraft{StartDate: "2024-01-01", EndDate: "2025-01-02"}, "end_date", "maxspan"},
		{"whole calendar", CycleDraft{StartDate: "0001-01-01", EndDate: "9999-12-31"}, "end_date", "maxspan"},
		{"zero length", CycleDraft{StartDate: "2024-01-01", CycleLength: types.NewFlexFloat(0)}, "cycle_length", "min"},
		{"long length", CycleDraft{StartDate: "2024-01-01", CycleLength: types.NewFlexFloat(366)}, "cycle_length", "max"},
		{"fractional length", CycleDraft{StartDate: "2024-01-01", CycleLength: types.NewFlexFloat(27.5)}, "cycle_length", "whole"},
		{"long notes", CycleDraft{StartDate: "2024-01-01", Notes: strings.Repeat("n", 1001)}, "notes", "max"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verr := Validate(tc.draft)
			if tc.field == "" {
				assert.Nil(t, verr)
				return
			}
			require.NotNil(t, verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.rule, verr.Rule)
		})
	}
}

func TestValidatePhysicalDataFromFormInput(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
		rule  string
	}{
		{"empty form", `{}`, "", ""},
		{"blank strings", `{"height_cm":"","weight_kg":null,"pain_level":""}`, "", ""},
		{"numeric strings", `{"height_cm":"165.5","weight_kg":"58","blood_pressure_systolic":"120","pain_level":"medium"}`, "", ""},
		{"zero height", `{"height_cm":0}`, "height_cm", "gt"},
		{"negative weight", `{"weight_kg":"-2"}`, "weight_kg", "gt"},
		{"fractional pressure", `{"blood_pressure_diastolic":80.5}`, "blood_pressure_diastolic", "whole"},
		{"bad pain", `{"pain_level":"severe"}`, "pain_level", "oneof"},
		{"pressure at limit", `{"blood_pressure_systolic":300,"blood_pressure_diastolic":"300"}`, "", ""},
		{"systolic over limit", `{"blood_pressure_systolic":301}`, "blood_pressure_systolic", "max"},
		{"huge systolic", `{"blood_pressure_systolic":1e19,"blood_pressure_diastolic":"80"}`, "blood_pressure_systolic", "max"},
		{"huge diastolic text", `{"blood_pressure_diastolic":"1e19"}`, "blood_pressure_diastolic", "max"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var draft PhysicalDataDraft
			require.NoError(t, json.Unmarshal([]byte(tc.body), &draft))

			verr := Validate(draft)
			if tc.field == "" {
				assert.Nil(t, verr)
				return
			}
			require.NotNil(t, verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.rule, verr.Rule)
		})
	}
}

func TestValidateCycleSpanMessage(t *testing.T) {
	verr := Validate(CycleDraft{StartDate: "2024-01-01", EndDate: "2030-01-01"})
	require.NotNil(t, verr)
	assert.Equal(t, "A cycle cannot span more than 366 days", verr.Message)
}

func TestValidateNotifications(t *testing.T) {
	assert.Nil(t, Validate(NewNotificationDraft(nil)))
	assert.Nil(t, Validate(NotificationDraft{DaysBeforePeriod: 14}))

	verr := Validate(NotificationDraft{DaysBeforePeriod: 0})
	require.NotNil(t, verr)
	assert.Equal(t, "Days before period must be at least 1", verr.Message)

	verr = Validate(NotificationDraft{DaysBeforePeriod: 15})
	require.NotNil(t, verr)
	assert.Equal(t, "Days before period must be at most 14", verr.Message)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Blood pressure systolic", Label("blood_pressure_systolic"))
	assert.Equal(t, "Name", Label("name"))
	assert.Equal(t, "Field", Label(""))
}
