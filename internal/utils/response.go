package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Error types carried in the "type" field of the error envelope
const (
	ErrTypeValidation = "data.validation.input"
	ErrTypeBusy       = "form.busy"
	ErrTypeAuth       = "session.required"
	ErrTypeNotFound   = "route.notfound"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends the standard error envelope
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return ErrorResponseWith(c, message, status, errorType, nil)
}

// ErrorResponseWith sends the standard error envelope plus extra fields
func ErrorResponseWith(c *fiber.Ctx, message string, status int, errorType string, extra fiber.Map) error {
	body := fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, ErrTypeNotFound)
}

// MutationSuccessResponse confirms a form submit and returns the refreshed entity
func MutationSuccessResponse(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"message":   message,
		"ok":        true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"data":      data,
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int         `json:"status"`
	Message   string      `json:"message"`
	Ok        bool        `json:"ok"`
	Timestamp string      `json:"timestamp"`
	URL       string      `json:"url"`
	Type      string      `json:"type,omitempty"`
	Field     string      `json:"field,omitempty"`
	Redirect  string      `json:"redirect,omitempty"`
	Draft     interface{} `json:"draft,omitempty"`
}

// SuccessResponseStruct defines the schema for form submit responses
type SuccessResponseStruct struct {
	Message   string      `json:"message"`
	Ok        bool        `json:"ok"`
	Timestamp string      `json:"timestamp"`
	Data      interface{} `json:"data"`
}
