// common.go
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
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ruthvic2255/cycle-companion/internal/forms"
	"github.com/ruthvic2255/cycle-companion/internal/middleware"
	"github.com/ruthvic2255/cycle-companion/internal/session"
	"github.com/ruthvic2255/cycle-companion/internal/types"
	"github.com/ruthvic2255/cycle-companion/internal/utils"
	"go.uber.org/zap"
)

// normalizer is implemented by drafts that clean their free-text inputs
type normalizer interface {
	Normalize()
}

// getUser returns the user the session gate resolved
func getUser(c *fiber.Ctx) (*session.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "Authentication required",
			Type:    utils.ErrTypeAuth,
		}
	}
	return user, nil
}

// decodeDraft parses the request body into draft and validates it. When ok
// is false the request has already been answered with a 400.
func decodeDraft(c *fiber.Ctx, draft interface{}) (ok bool, err error) {
	if err := c.BodyParser(draft); err != nil {
		return false, utils.ErrorResponse(c, "Invalid form data", fiber.StatusBadRequest, utils.ErrTypeValidation)
	}
	if n, isNormalizer := draft.(normalizer); isNormalizer {
		n.Normalize()
	}
	if verr := forms.Validate(draft); verr != nil {
		return false, utils.ErrorResponseWith(c, verr.Message, fiber.StatusBadRequest, utils.ErrTypeValidation, fiber.Map{
			"field": verr.Field,
			"rule":  verr.Rule,
			"draft": draft,
		})
	}
	return true, nil
}

// busyResponse refuses a submit while the same form is still saving
func busyResponse(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, "A previous submission is still being saved", fiber.StatusConflict, utils.ErrTypeBusy)
}

// storeFailed logs a store error and answers with the page's generic
// message. The draft is echoed so the client can retry without retyping.
func storeFailed(c *fiber.Ctx, log *zap.Logger, err error, message, userID string, draft interface{}) error {
	log.Error(message,
		zap.String("user_id", userID),
		zap.String("path", c.Path()),
		zap.Error(err))

	extra := fiber.Map{}
	if draft != nil {
		extra["draft"] = draft
	}
	return utils.ErrorResponseWith(c, message, fiber.StatusInternalServerError, "data.store", extra)
}

// ErrorHandler renders any error that escapes a handler in the standard envelope
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var custom *types.CustomError
		if errors.As(err, &custom) {
			extra := fiber.Map{}
			if custom.Redirect != "" {
				extra["redirect"] = custom.Redirect
			}
			return utils.ErrorResponseWith(c, custom.Message, custom.Code, custom.Type, extra)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			errorType := "request"
			if fe.Code == fiber.StatusNotFound {
				errorType = utils.ErrTypeNotFound
			}
			return utils.ErrorResponse(c, fe.Message, fe.Code, errorType)
		}

		log.Error("Unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return utils.ErrorResponse(c, "Internal Server Error", fiber.StatusInternalServerError, "unknown")
	}
}

// userIDOf returns the signed-in user id for log fields, empty when anonymous
func userIDOf(c *fiber.Ctx) string {
	if user, ok := middleware.CurrentUser(c); ok {
		return user.ID
	}
	return ""
}
