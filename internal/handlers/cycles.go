// cycles.go
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

package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ruthvic2255/cycle-companion/internal/calendar"
	"github.com/ruthvic2255/cycle-companion/internal/forms"
	"github.com/ruthvic2255/cycle-companion/internal/models"
	"github.com/ruthvic2255/cycle-companion/internal/services"
	"github.com/ruthvic2255/cycle-companion/internal/utils"
)

// recentCycles is how many cycles the history list shows
const recentCycles = 5

const noCyclesMessage = "No cycles recorded yet. Add your first cycle to get started!"

// CycleView is one row of the cycle history list
type CycleView struct {
	ID          string  `json:"id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date,omitempty"`
	CycleLength *int    `json:"cycle_length,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Label       string  `json:"label"`
	Duration    string  `json:"duration,omitempty"`
}

// CycleHistoryResponse is the calendar page state
type CycleHistoryResponse struct {
	Cycles           []CycleView `json:"cycles"`
	HighlightedDates []string    `json:"highlighted_dates"`
	Total            int         `json:"total"`
	Message          string      `json:"message,omitempty"`
}

// GetCycles handles GET /api/cycles
// @Summary Get cycle history
// @Description The five most recent cycles and every highlighted calendar date
// @Tags Cycles
// @Produce json
// @Success 200 {object} CycleHistoryResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /cycles [get]
func (h *UserDataHandler) GetCycles(c *fiber.Ctx) error {
	user, err := getUser(c)
	if err != nil {
		return err
	}

	history, err := h.cycleHistory(c.UserContext(), user.ID)
	if err != nil {
		return storeFailed(c, h.Log, err, "Failed to load cycle data", user.ID, nil)
	}
	return c.Status(fiber.StatusOK).JSON(history)
}

// CreateCycle handles POST /api/cycles
// @Summary Record a cycle
// @Description Validate and append a cycle, then return the refreshed history
// @Tags Cycles
// @Accept json
// @Produce json
// @Param cycle body forms.CycleDraft true "Cycle form"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /cycles [post]
func (h *UserDataHandler) CreateCycle(c *fiber.Ctx) error {
	user, err := getUser(c)
	if err != nil {
		return err
	}

	var draft forms.CycleDraft
	if ok, err := decodeDraft(c, &draft); !ok {
		return err
	}

	release, ok := h.Guard.TryAcquire(user.ID, forms.FormCycle)
	if !ok {
		return busyResponse(c)
	}
	defer release()

	cycle := draft.Model(user.ID)
	if err := services.CreateCycle(c.UserContext(), h.DB, &cycle); err != nil {
		return storeFailed(c, h.Log, err, "Failed to record cycle", user.ID, draft)
	}

	history, err := h.cycleHistory(c.UserContext(), user.ID)
	if err != nil {
		// The cycle is stored; only the refresh failed
		return storeFailed(c, h.Log, err, "Failed to load cycle data", user.ID, nil)
	}
	return utils.MutationSuccessResponse(c, fiber.StatusCreated, "Cycle recorded successfully!", history)
}

func (h *UserDataHandler) cycleHistory(ctx context.Context, userID string) (CycleHistoryResponse, error) {
	cycles, err := services.ListCycles(ctx, h.DB, userID)
	if err != nil {
		return CycleHistoryResponse{}, err
	}
	return buildCycleHistory(cycles), nil
}

// buildCycleHistory expects cycles newest first
func buildCycleHistory(cycles []models.MenstrualCycle) CycleHistoryResponse {
	ranges := make([]calendar.Range, 0, len(cycles))
	views := make([]CycleView, 0, min(len(cycles), recentCycles))

	for i, cycle := range cycles {
		start := time.Time(cycle.StartDate)
		var end *time.Time
		if cycle.EndDate != nil {
			e := time.Time(*cycle.EndDate)
			end = &e
		}
		ranges = append(ranges, calendar.Range{Start: start, End: end})

		if i >= recentCycles {
			continue
		}
		view := CycleView{
			ID:          cycle.ID,
			StartDate:   start.Format(forms.DateLayout),
			EndDate:     forms.FormatDate(cycle.EndDate),
			CycleLength: cycle.CycleLength,
			Notes:       cycle.Notes,
			Label:       calendar.FormatRange(start, end),
		}
		if cycle.CycleLength != nil {
			view.Duration = fmt.Sprintf("Duration: %d days", *cycle.CycleLength)
		}
		views = append(views, view)
	}

	days := calendar.HighlightedDates(ranges)
	highlighted := make([]string, len(days))
	for i, d := range days {
		highlighted[i] = d.Format(forms.DateLayout)
	}

	res := CycleHistoryResponse{
		Cycles:           views,
		HighlightedDates: highlighted,
		Total:            len(cycles),
	}
	if len(cycles) == 0 {
		res.Message = noCyclesMessage
	}
	return res
}
