package types

import "fmt"

// CustomError is returned by middleware and rendered by the global error handler
type CustomError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Type     string `json:"type"`
	Redirect string `json:"redirect,omitempty"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
