package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func formatAll(days []time.Time) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Format("2006-01-02")
	}
	return out
}

func TestExpandRange(t *testing.T) {
	days := ExpandRange(date("2024-01-01"), datePtr("2024-01-05"))
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"}, formatAll(days))
}

func TestExpandRangeAcrossMonthAndLeapDay(t *testing.T) {
	days := ExpandRange(date("2024-02-27"), datePtr("2024-03-02"))
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}, formatAll(days))
}

func TestExpandRangeClampsLongSpans(t *testing.T) {
	days := ExpandRange(date("0001-01-01"), datePtr("9999-12-31"))
	require.Len(t, days, MaxRangeDays+1)
	assert.Equal(t, "0001-01-01", days[0].Format("2006-01-02"))
	assert.Equal(t, "0002-01-02", days[MaxRangeDays].Format("2006-01-02"))
}

func TestExpandRangeOpenEnded(t *testing.T) {
	days := ExpandRange(date("2024-03-10"), nil)
	assert.Equal(t, []string{"2024-03-10"}, formatAll(days))
}

func TestExpandRangeSingleDay(t *testing.T) {
	days := ExpandRange(date("2024-03-10"), datePtr("2024-03-10"))
	assert.Len(t, days, 1)
}

func TestExpandRangeReversedIsEmpty(t *testing.T) {
	assert.Empty(t, ExpandRange(date("2024-01-05"), datePtr("2024-01-01")))
}

func TestExpandRangeIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 15, 0, 0, time.UTC)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, formatAll(ExpandRange(start, &end)))
}

func TestHighlightedDatesUnion(t *testing.T) {
	ranges := []Range{
		{Start: date("2024-02-01"), End: datePtr("2024-02-03")},
		{Start: date("2024-01-01"), End: datePtr("2024-01-02")},
		{Start: date("2024-02-02"), End: datePtr("2024-02-04")},
		{Start: date("2024-03-01")},
	}
	got := formatAll(HighlightedDates(ranges))
	assert.Equal(t, []string{
		"2024-01-01", "2024-01-02",
		"2024-02-01", "2024-02-02", "2024-02-03", "2024-02-04",
		"2024-03-01",
	}, got)
}

func TestHighlightedDatesEmpty(t *testing.T) {
	got := HighlightedDates(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "Jan 1, 2024 - Jan 5, 2024", FormatRange(date("2024-01-01"), datePtr("2024-01-05")))
	assert.Equal(t, "Dec 31, 2023", FormatRange(date("2023-12-31"), nil))
}
