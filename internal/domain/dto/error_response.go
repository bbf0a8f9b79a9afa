package dto

import "time"

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - Message: short human-readable description of what went wrong.
//   - ErrorDetails: optional underlying error text (omitted when empty).
//   - Timestamp: when the error response was produced.
//
// It also implements the error interface so middlewares can pass it around
// as a regular error value.
type ErrorResponse struct {
	Message      string    `json:"message" example:"parameters missing"`
	ErrorDetails string    `json:"error,omitempty" example:"parse failure"`
	Timestamp    time.Time `json:"timestamp" example:"2024-01-02T15:04:05Z"`
}

// NewErrorResponse builds an ErrorResponse with the current timestamp.
// A nil err leaves ErrorDetails empty.
func NewErrorResponse(message string, err error) ErrorResponse {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return ErrorResponse{
		Message:      message,
		ErrorDetails: details,
		Timestamp:    time.Now(),
	}
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}
