// flex_float.go
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

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexFloat is an optional float64 that can be unmarshaled from a JSON number,
// a numeric JSON string, an empty string or null. Empty and null leave it unset.
type FlexFloat struct {
	Float64 float64
	Valid   bool
}

// NewFlexFloat returns a set FlexFloat
func NewFlexFloat(v float64) FlexFloat {
	return FlexFloat{Float64: v, Valid: true}
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	// Try unmarshaling as a number first
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = NewFlexFloat(n)
		return nil
	}

	// Try unmarshaling as a string
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		val, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("FlexFloat: invalid number string %q", s)
		}
		*f = NewFlexFloat(val)
		return nil
	}

	return fmt.Errorf("FlexFloat: unexpected type, expected number or string")
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Float64)
}

// Ptr returns nil when unset
func (f FlexFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

// IntPtr returns the value truncated to an int, or nil when unset or
// outside the int32 range. Callers validate wholeness and bounds first.
func (f FlexFloat) IntPtr() *int {
	if !f.Valid || f.Float64 < math.MinInt32 || f.Float64 > math.MaxInt32 {
		return nil
	}
	v := int(f.Float64)
	return &v
}

// FlexFloatFrom converts a stored optional float into a FlexFloat
func FlexFloatFrom(v *float64) FlexFloat {
	if v == nil {
		return FlexFloat{}
	}
	return NewFlexFloat(*v)
}

// FlexFloatFromInt converts a stored optional int into a FlexFloat
func FlexFloatFromInt(v *int) FlexFloat {
	if v == nil {
		return FlexFloat{}
	}
	return NewFlexFloat(float64(*v))
}
