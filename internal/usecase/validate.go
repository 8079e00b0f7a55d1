package usecase

import (
	"fmt"
	"strings"

	"go-inquiry-backend/internal/domain"
	"go-inquiry-backend/pkg/security"
	"go-inquiry-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var (
	nameRules = []validation.Rule{
		{Tag: "min=2,max=100", Message: "Name must be between 2 and 100 characters"},
		{Tag: "valid_name", Message: "Name can only contain letters and spaces"},
	}
	emailRules = []validation.Rule{
		{Tag: "required,email", Message: "Please provide a valid email address"},
	}
	phoneRules = []validation.Rule{
		{Tag: "valid_phone", Message: "Please provide a valid phone number"},
	}
	companyRules = []validation.Rule{
		{Tag: "max=100", Message: "Company name must be less than 100 characters"},
	}
	subjectRules = []validation.Rule{
		{Tag: "min=5,max=200", Message: "Subject must be between 5 and 200 characters"},
	}
	messageRules = []validation.Rule{
		{Tag: "min=10,max=2000", Message: "Message must be between 10 and 2000 characters"},
	}
	locationRules = []validation.Rule{
		{Tag: "max=200", Message: "Location must be less than 200 characters"},
	}
	productTypeRules = []validation.Rule{
		{Tag: "oneof=transformers servo-stabilizers wires-cables other", Message: "Please select a valid product type"},
	}
	specificationsRules = []validation.Rule{
		{Tag: "max=1000", Message: "Specifications must be less than 1000 characters"},
	}
	quantityRules = []validation.Rule{
		{Tag: "max=100", Message: "Quantity must be less than 100 characters"},
	}
	budgetRangeRules = []validation.Rule{
		{Tag: "oneof=under-1-lakh 1-5-lakh 5-25-lakh 25-lakh-plus not-specified", Message: "Please select a valid budget range"},
	}
	timelineRules = []validation.Rule{
		{Tag: "oneof=immediate 1-month 3-months 6-months flexible", Message: "Please select a valid timeline"},
	}
	additionalRequirementsRules = []validation.Rule{
		{Tag: "max=2000", Message: "Additional requirements must be less than 2000 characters"},
	}
)

// ValidateContactForm checks every rule and returns either a normalized
// submission or a *domain.ValidationError listing all violations.
func ValidateContactForm(v *validator.Validate, form *domain.ContactForm) (*domain.ContactSubmission, error) {
	sub := &domain.ContactSubmission{
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.TrimSpace(form.Email),
		Phone:   strings.TrimSpace(form.Phone),
		Company: strings.TrimSpace(form.Company),
		Subject: strings.TrimSpace(form.Subject),
		Message: strings.TrimSpace(form.Message),
	}

	c := validation.NewChecker(v)
	c.Required("name", sub.Name, nameRules...)
	c.Required("email", sub.Email, emailRules...)
	c.Optional("phone", sub.Phone, phoneRules...)
	c.Optional("company", sub.Company, companyRules...)
	c.Required("subject", sub.Subject, subjectRules...)
	c.Required("message", sub.Message, messageRules...)

	if errs := c.Errors(); len(errs) > 0 {
		return nil, &domain.ValidationError{Fields: errs}
	}

	sub.Email = validation.NormalizeEmail(sub.Email)
	return sub, nil
}

// ValidateQuoteForm is ValidateContactForm for quote requests, including
// attachment count, size and type checks. It does not assign a quote number.
func ValidateQuoteForm(v *validator.Validate, form *domain.QuoteForm) (*domain.QuoteSubmission, error) {
	sub := &domain.QuoteSubmission{
		Name:                   strings.TrimSpace(form.Name),
		Email:                  strings.TrimSpace(form.Email),
		Phone:                  strings.TrimSpace(form.Phone),
		Company:                strings.TrimSpace(form.Company),
		Location:               strings.TrimSpace(form.Location),
		ProductType:            domain.ProductType(strings.TrimSpace(form.ProductType)),
		Specifications:         strings.TrimSpace(form.Specifications),
		Quantity:               strings.TrimSpace(form.Quantity),
		BudgetRange:            domain.BudgetRange(strings.TrimSpace(form.BudgetRange)),
		Timeline:               domain.Timeline(strings.TrimSpace(form.Timeline)),
		AdditionalRequirements: strings.TrimSpace(form.AdditionalRequirements),
	}

	c := validation.NewChecker(v)
	c.Required("name", sub.Name, nameRules...)
	c.Required("email", sub.Email, emailRules...)
	c.Required("phone", sub.Phone, phoneRules...)
	c.Optional("company", sub.Company, companyRules...)
	c.Optional("location", sub.Location, locationRules...)
	c.Required("productType", string(sub.ProductType), productTypeRules...)
	c.Optional("specifications", sub.Specifications, specificationsRules...)
	c.Optional("quantity", sub.Quantity, quantityRules...)
	c.Optional("budgetRange", string(sub.BudgetRange), budgetRangeRules...)
	c.Optional("timeline", string(sub.Timeline), timelineRules...)
	c.Optional("additionalRequirements", sub.AdditionalRequirements, additionalRequirementsRules...)
	sub.Attachments = checkAttachments(c, form.Attachments)

	if errs := c.Errors(); len(errs) > 0 {
		return nil, &domain.ValidationError{Fields: errs}
	}

	sub.Email = validation.NormalizeEmail(sub.Email)
	return sub, nil
}

func checkAttachments(c *validation.Checker, files []domain.UploadedFile) []domain.Attachment {
	if len(files) > domain.MaxAttachments {
		c.Add("attachments", len(files), fmt.Sprintf("You can upload at most %d files", domain.MaxAttachments))
		return nil
	}

	out := make([]domain.Attachment, 0, len(files))
	for _, f := range files {
		if f.Size > domain.MaxAttachmentBytes || len(f.Data) > domain.MaxAttachmentBytes {
			c.Add("attachments", f.Filename, f.Filename+" exceeds the 5MB size limit")
			continue
		}

		res := security.ValidateFile(f.Filename, f.Data)
		if !res.Valid {
			c.Add("attachments", f.Filename, fmt.Sprintf("%s was rejected: %s. Allowed types: %s",
				f.Filename, res.Error, strings.Join(security.GetAllowedExtensions(), ", ")))
			continue
		}

		out = append(out, domain.Attachment{
			Filename:    f.Filename,
			ContentType: res.DetectedMIME,
			Size:        int64(len(f.Data)),
			Data:        f.Data,
		})
	}
	return out
}
