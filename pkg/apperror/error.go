package apperror

import "net/http"

type AppError struct {
	Code    int         `json:"code"`
	Label   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, label, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Label:   label,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, "Bad request", message, nil)
}

// Validation carries the per-field failures back to the client.
func Validation(details interface{}) *AppError {
	e := New(http.StatusBadRequest, "Validation failed", "Please correct the highlighted fields and try again.", nil)
	e.Details = details
	return e
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, "Route not found", message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, "Too many requests", message, nil)
}

func ServiceUnavailable(message string, err error) *AppError {
	return New(http.StatusServiceUnavailable, "Service unavailable", message, err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal server error", "An unexpected error occurred. Please try again later.", err)
}
