package errors

import "fmt"

// HTTPError is an error that carries the response code and message the
// delivery layer should send.
type HTTPError struct {
	Code       int
	Message    string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// NewHTTPError returns an HTTPError answered with 400.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message, StatusCode: 400}
}

// NewHTTPErrorWithStatus returns an HTTPError with an explicit status.
func NewHTTPErrorWithStatus(status, code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message, StatusCode: status}
}

// ValidationError describes one invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
