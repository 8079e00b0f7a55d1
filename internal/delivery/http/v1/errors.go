package v1

import (
	"errors"
	"net/http"

	"go-inquiry-backend/internal/domain"
	"go-inquiry-backend/pkg/apperror"
)

const contactUsHint = "Please try again later or contact us directly via phone."

// submitError maps a submission usecase error to its HTTP form. failLabel
// is the route-specific label used for every 500.
func submitError(err error, failLabel string) *apperror.AppError {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return apperror.Validation(vErr.Fields)
	case errors.Is(err, domain.ErrEmailNotConfigured):
		return apperror.New(http.StatusInternalServerError, "Email service not configured",
			"The email service is not configured. "+contactUsHint, err)
	default:
		return apperror.New(http.StatusInternalServerError, failLabel, contactUsHint, err)
	}
}
