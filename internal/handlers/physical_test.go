package handlers_test

import (
	"encoding/json"
	"testing"

	"github.com/ruthvic2255/cycle-companion/internal/handlers"
	"github.com/ruthvic2255/cycle-companion/internal/models"
	"github.com/ruthvic2255/cycle-companion/internal/testutil"
	"github.com/ruthvic2255/cycle-companion/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhysicalDataEmptyForm(t *testing.T) {
	ta := setupApp(t)

	resp := ta.do(t, "GET", "/api/physical-data", aliceToken, nil)
	testutil.AssertStatus(t, resp, 200)

	var body handlers.PhysicalDataResponse
	testutil.ParseJSON(t, resp, &body)
	assert.False(t, body.PhysicalData.HeightCM.Valid)
	assert.Empty(t, body.RecordedAt)
}

func TestCreatePhysicalDataFromTextInputs(t *testing.T) {
	ta := setupApp(t)

	resp := ta.do(t, "POST", "/api/physical-data", aliceToken, map[string]interface{}{
		"height_cm":                "162.5",
		"weight_kg":                "",
		"hemoglobin_level":         12.1,
		"blood_pressure_systolic":  "118",
		"blood_pressure_diastolic": nil,
		"pain_level":               "medium",
	})
	testutil.AssertStatus(t, resp, 201)

	var saved envelope
	testutil.ParseJSON(t, resp, &saved)
	assert.Equal(t, "Physical data recorded successfully!", saved.Message)

	var latest handlers.PhysicalDataResponse
	require.NoError(t, json.Unmarshal(saved.Data, &latest))
	assert.Equal(t, types.NewFlexFloat(162.5), latest.PhysicalData.HeightCM)
	assert.False(t, latest.PhysicalData.WeightKG.Valid)
	assert.Equal(t, types.NewFlexFloat(118), latest.PhysicalData.BloodPressureSystolic)
	assert.Equal(t, "medium", latest.PhysicalData.PainLevel)
	assert.NotEmpty(t, latest.RecordedAt)

	var rows []models.PhysicalData
	require.NoError(t, ta.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].WeightKG)
	assert.Nil(t, rows[0].BloodPressureDiastolic)
}

func TestCreatePhysicalDataAppends(t *testing.T) {
	ta := setupApp(t)

	for _, weight := range []string{"60", "59.5"} {
		resp := ta.do(t, "POST", "/api/physical-data", aliceToken, map[string]string{"weight_kg": weight})
		testutil.AssertStatus(t, resp, 201)
	}

	var count int64
	require.NoError(t, ta.db.Model(&models.PhysicalData{}).Where("user_id = ?", alice.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestCreatePhysicalDataValidation(t *testing.T) {
	cases := []struct {
		name  string
		body  map[string]interface{}
		field string
	}{
		{"zero height", map[string]interface{}{"height_cm": 0}, "height_cm"},
		{"negative hemoglobin", map[string]interface{}{"hemoglobin_level": "-1"}, "hemoglobin_level"},
		{"fractional systolic", map[string]interface{}{"blood_pressure_systolic": 120.5}, "blood_pressure_systolic"},
		{"unknown pain", map[string]interface{}{"pain_level": "extreme"}, "pain_level"},
		{"huge systolic", map[string]interface{}{"blood_pressure_systolic": 1e19, "blood_pressure_diastolic": "80"}, "blood_pressure_systolic"},
		{"huge diastolic text", map[string]interface{}{"blood_pressure_diastolic": "1e19"}, "blood_pressure_diastolic"},
		{"systolic over limit", map[string]interface{}{"blood_pressure_systolic": 301}, "blood_pressure_systolic"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ta := setupApp(t)

			resp := ta.do(t, "POST", "/api/physical-data", aliceToken, tc.body)
			testutil.AssertStatus(t, resp, 400)

			var body envelope
			testutil.ParseJSON(t, resp, &body)
			assert.Equal(t, tc.field, body.Field)

			var count int64
			require.NoError(t, ta.db.Model(&models.PhysicalData{}).Count(&count).Error)
			assert.Zero(t, count)
		})
	}
}

func TestCreatePhysicalDataRejectsNonNumericText(t *testing.T) {
	ta := setupApp(t)

	resp := ta.do(t, "POST", "/api/physical-data", aliceToken, map[string]string{"height_cm": "tall"})
	testutil.AssertStatus(t, resp, 400)
}

func TestCreatePhysicalDataPressureAtLimit(t *testing.T) {
	ta := setupApp(t)

	resp := ta.do(t, "POST", "/api/physical-data", aliceToken, map[string]interface{}{
		"blood_pressure_systolic":  300,
		"blood_pressure_diastolic": "300",
	})
	testutil.AssertStatus(t, resp, 201)

	var rows []models.PhysicalData
	require.NoError(t, ta.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].BloodPressureSystolic)
	require.NotNil(t, rows[0].BloodPressureDiastolic)
	assert.Equal(t, 300, *rows[0].BloodPressureSystolic)
	assert.Equal(t, 300, *rows[0].BloodPressureDiastolic)
}
