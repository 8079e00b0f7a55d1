package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ContactStatus string

const (
	ContactStatusNew        ContactStatus = "new"
	ContactStatusInProgress ContactStatus = "in_progress"
	ContactStatusResolved   ContactStatus = "resolved"
	ContactStatusClosed     ContactStatus = "closed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

const DefaultSource = "website"

// Contact is the persisted copy of a contact submission.
type Contact struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	Name       string        `gorm:"size:100;not null" json:"name"`
	Email      string        `gorm:"size:255;not null;index" json:"email"`
	Phone      *string       `gorm:"size:20" json:"phone,omitempty"`
	Company    *string       `gorm:"size:100" json:"company,omitempty"`
	Subject    string        `gorm:"size:200;not null" json:"subject"`
	Message    string        `gorm:"type:text;not null" json:"message"`
	Status     ContactStatus `gorm:"size:20;not null;index" json:"status"`
	Priority   Priority      `gorm:"size:10;not null;index" json:"priority"`
	AssignedTo *string       `gorm:"size:100" json:"assigned_to,omitempty"`
	IPAddress  *string       `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent  *string       `gorm:"type:text" json:"user_agent,omitempty"`
	Source     string        `gorm:"size:50;not null" json:"source"`
	Notes      *string       `gorm:"type:text" json:"notes,omitempty"`
	ResolvedAt *time.Time    `json:"resolved_at,omitempty"`
	CreatedAt  time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func (Contact) TableName() string { return "contacts" }

// BeforeCreate fills lifecycle defaults.
func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.Status == "" {
		c.Status = ContactStatusNew
	}
	if c.Priority == "" {
		c.Priority = PriorityMedium
	}
	if c.Source == "" {
		c.Source = DefaultSource
	}
	return nil
}

// NewContactRecord maps a submission to its storage row.
func NewContactRecord(s *ContactSubmission) *Contact {
	return &Contact{
		Name:      s.Name,
		Email:     s.Email,
		Phone:     Nullable(s.Phone),
		Company:   Nullable(s.Company),
		Subject:   s.Subject,
		Message:   s.Message,
		IPAddress: Nullable(s.Meta.IPAddress),
		UserAgent: Nullable(s.Meta.UserAgent),
	}
}

type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
}

// Nullable maps "" to NULL.
func Nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
