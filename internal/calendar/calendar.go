// calendar.go
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

// Package calendar expands cycle date ranges into the day sets a calendar
// highlights and renders the ranges for display.
package calendar

import (
	"sort"
	"time"
)

// DisplayLayout renders dates as "Jan 2, 2006"
const DisplayLayout = "Jan 2, 2006"

// Range is a start date with an optional inclusive end date
type Range struct {
	Start time.Time
	End   *time.Time
}

// Day truncates t to its calendar day in UTC
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MaxRangeDays is the longest span a single range may cover
const MaxRangeDays = 366

// ExpandRange returns one date per day from start through end inclusive.
// A missing end yields only start. An end before start yields nothing. Ends
// more than MaxRangeDays after start are clamped.
func ExpandRange(start time.Time, end *time.Time) []time.Time {
	start = Day(start)
	if end == nil {
		return []time.Time{start}
	}

	last := Day(*end)
	if last.Before(start) {
		return nil
	}
	if limit := start.AddDate(0, 0, MaxRangeDays); last.After(limit) {
		last = limit
	}

	days := make([]time.Time, 0, int(last.Sub(start).Hours()/24)+1)
	for d := start; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// HighlightedDates is the union of every range's days, deduplicated and ascending
func HighlightedDates(ranges []Range) []time.Time {
	seen := make(map[time.Time]struct{})
	dates := make([]time.Time, 0)
	for _, r := range ranges {
		for _, d := range ExpandRange(r.Start, r.End) {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// FormatRange renders "Jan 1, 2024 - Jan 5, 2024", or only the start when end is nil
func FormatRange(start time.Time, end *time.Time) string {
	label := start.Format(DisplayLayout)
	if end != nil {
		label += " - " + end.Format(DisplayLayout)
	}
	return label
}
