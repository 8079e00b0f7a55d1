package domain

import (
	"context"
	"time"
)

type EmailType string

const (
	EmailTypeContactForm  EmailType = "contact_form"
	EmailTypeQuoteRequest EmailType = "quote_request"
	EmailTypeAutoReply    EmailType = "auto_reply"
)

type EmailStatus string

const (
	EmailStatusSent   EmailStatus = "sent"
	EmailStatusFailed EmailStatus = "failed"
)

// Template names recorded in email_logs.template_used.
const (
	TemplateContactForm       = "contactForm"
	TemplateContactAutoReply  = "contactAutoReply"
	TemplateQuoteRequest      = "quoteRequest"
	TemplateQuoteConfirmation = "quoteConfirmation"
)

// AdminRecipientName is recorded for company notifications.
const AdminRecipientName = "Admin"

// EmailLog records the outcome of one dispatched message. It references at
// most one parent; no referential integrity is enforced.
type EmailLog struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	MessageID        *string     `gorm:"size:255" json:"message_id,omitempty"`
	EmailType        EmailType   `gorm:"size:20;not null;index" json:"email_type"`
	SenderEmail      string      `gorm:"size:255;not null" json:"sender_email"`
	SenderName       *string     `gorm:"size:100" json:"sender_name,omitempty"`
	RecipientEmail   string      `gorm:"size:255;not null;index" json:"recipient_email"`
	RecipientName    *string     `gorm:"size:100" json:"recipient_name,omitempty"`
	Subject          string      `gorm:"size:500;not null" json:"subject"`
	TemplateUsed     *string     `gorm:"size:50" json:"template_used,omitempty"`
	Status           EmailStatus `gorm:"size:20;not null;index" json:"status"`
	ErrorMessage     *string     `gorm:"type:text" json:"error_message,omitempty"`
	RelatedContactID *uint       `gorm:"index" json:"related_contact_id,omitempty"`
	RelatedQuoteID   *uint       `gorm:"index" json:"related_quote_id,omitempty"`
	IPAddress        *string     `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent        *string     `gorm:"type:text" json:"user_agent,omitempty"`
	SentAt           *time.Time  `json:"sent_at,omitempty"`
	CreatedAt        time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

func (EmailLog) TableName() string { return "email_logs" }

type EmailLogRepository interface {
	Create(ctx context.Context, entry *EmailLog) error
}
