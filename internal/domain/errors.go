package domain

import (
	"errors"

	"go-inquiry-backend/pkg/validation"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrEmailNotConfigured   = errors.New("email service not configured")
	ErrNotificationFailed   = errors.New("company notification could not be delivered")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrDuplicateQuoteNumber = errors.New("duplicate quote number")
)

// ValidationError carries every violated rule of one submission.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
