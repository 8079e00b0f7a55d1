package domain

import "context"

type ProductType string

const (
	ProductTransformers     ProductType = "transformers"
	ProductServoStabilizers ProductType = "servo-stabilizers"
	ProductWiresCables      ProductType = "wires-cables"
	ProductOther            ProductType = "other"
)

type BudgetRange string

const (
	BudgetUnder1Lakh   BudgetRange = "under-1-lakh"
	Budget1To5Lakh     BudgetRange = "1-5-lakh"
	Budget5To25Lakh    BudgetRange = "5-25-lakh"
	Budget25LakhPlus   BudgetRange = "25-lakh-plus"
	BudgetNotSpecified BudgetRange = "not-specified"
)

type Timeline string

const (
	TimelineImmediate Timeline = "immediate"
	Timeline1Month    Timeline = "1-month"
	Timeline3Months   Timeline = "3-months"
	Timeline6Months   Timeline = "6-months"
	TimelineFlexible  Timeline = "flexible"
)

const (
	MaxAttachments     = 3
	MaxAttachmentBytes = 5 * 1024 * 1024
)

// SourceMeta is informational only and never validated.
type SourceMeta struct {
	IPAddress string
	UserAgent string
}

// ContactForm is the raw contact body as submitted.
type ContactForm struct {
	Name    string `json:"name" form:"name" example:"Jane Doe"`
	Email   string `json:"email" form:"email" example:"jane@example.com"`
	Phone   string `json:"phone" form:"phone" example:"+919876543210"`
	Company string `json:"company" form:"company"`
	Subject string `json:"subject" form:"subject" example:"Need specs"`
	Message string `json:"message" form:"message" example:"Please send transformer specs for 100kVA unit."`
}

// QuoteForm is the raw quote body. Files arrive as multipart parts.
type QuoteForm struct {
	Name                   string `json:"name" form:"name"`
	Email                  string `json:"email" form:"email"`
	Phone                  string `json:"phone" form:"phone"`
	Company                string `json:"company" form:"company"`
	Location               string `json:"location" form:"location"`
	ProductType            string `json:"productType" form:"productType"`
	Specifications         string `json:"specifications" form:"specifications"`
	Quantity               string `json:"quantity" form:"quantity"`
	BudgetRange            string `json:"budgetRange" form:"budgetRange"`
	Timeline               string `json:"timeline" form:"timeline"`
	AdditionalRequirements string `json:"additionalRequirements" form:"additionalRequirements"`

	Attachments []UploadedFile `json:"-" form:"-"`
}

// UploadedFile is one multipart part. Size is the declared size; Data may be
// truncated once it exceeds MaxAttachmentBytes.
type UploadedFile struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// Attachment is an uploaded file that passed validation.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`
}

// ContactSubmission is a validated, normalized contact form. Empty optional
// fields mean "not provided".
type ContactSubmission struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Subject string
	Message string
	Meta    SourceMeta
}

// QuoteSubmission is a validated, normalized quote request. QuoteNumber is
// assigned once by the usecase before persistence.
type QuoteSubmission struct {
	QuoteNumber            string
	Name                   string
	Email                  string
	Phone                  string
	Company                string
	Location               string
	ProductType            ProductType
	Specifications         string
	Quantity               string
	BudgetRange            BudgetRange
	Timeline               Timeline
	AdditionalRequirements string
	Attachments            []Attachment
	Meta                   SourceMeta
}

type ContactDetails struct {
	NotificationSent  bool `json:"notificationSent"`
	AutoReplySent     bool `json:"autoReplySent"`
	DatabaseAvailable bool `json:"databaseAvailable"`
}

type ContactResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Details ContactDetails `json:"details"`
}

type QuoteDetails struct {
	QuoteRequestSent     bool `json:"quoteRequestSent"`
	ConfirmationSent     bool `json:"confirmationSent"`
	AttachmentsProcessed int  `json:"attachmentsProcessed"`
	DatabaseAvailable    bool `json:"databaseAvailable"`
}

type QuoteResult struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	QuoteNumber string       `json:"quoteNumber"`
	Details     QuoteDetails `json:"details"`
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// Submit validates, stores (best-effort) and dispatches a contact form.
	Submit(ctx context.Context, form *ContactForm, meta SourceMeta) (*ContactResult, error)
}

type QuoteUsecase interface {
	Submit(ctx context.Context, form *QuoteForm, meta SourceMeta) (*QuoteResult, error)
}
