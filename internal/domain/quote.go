package domain

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuoteStatus string

const (
	QuoteStatusNew         QuoteStatus = "new"
	QuoteStatusUnderReview QuoteStatus = "under_review"
	QuoteStatusQuoted      QuoteStatus = "quoted"
	QuoteStatusNegotiating QuoteStatus = "negotiating"
	QuoteStatusAccepted    QuoteStatus = "accepted"
	QuoteStatusRejected    QuoteStatus = "rejected"
	QuoteStatusExpired     QuoteStatus = "expired"
)

// QuoteRequest is the persisted copy of a quote submission.
type QuoteRequest struct {
	ID                     uint           `gorm:"primaryKey" json:"id"`
	QuoteNumber            string         `gorm:"size:20;not null;uniqueIndex" json:"quote_number"`
	Name                   string         `gorm:"size:100;not null" json:"name"`
	Email                  string         `gorm:"size:255;not null;index" json:"email"`
	Phone                  string         `gorm:"size:20;not null" json:"phone"`
	Company                *string        `gorm:"size:100" json:"company,omitempty"`
	Location               *string        `gorm:"size:200" json:"location,omitempty"`
	ProductType            ProductType    `gorm:"size:30;not null;index" json:"product_type"`
	Specifications         *string        `gorm:"type:text" json:"specifications,omitempty"`
	Quantity               *string        `gorm:"size:100" json:"quantity,omitempty"`
	BudgetRange            *string        `gorm:"size:20" json:"budget_range,omitempty"`
	Timeline               *string        `gorm:"size:20" json:"timeline,omitempty"`
	AdditionalRequirements *string        `gorm:"type:text" json:"additional_requirements,omitempty"`
	Status                 QuoteStatus    `gorm:"size:20;not null;index" json:"status"`
	Priority               Priority       `gorm:"size:10;not null;index" json:"priority"`
	Attachments            datatypes.JSON `json:"attachments,omitempty"`
	IPAddress              *string        `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent              *string        `gorm:"type:text" json:"user_agent,omitempty"`
	Source                 string         `gorm:"size:50;not null" json:"source"`
	CreatedAt              time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
}

func (QuoteRequest) TableName() string { return "quote_requests" }

func (q *QuoteRequest) BeforeCreate(tx *gorm.DB) error {
	if q.Status == "" {
		q.Status = QuoteStatusNew
	}
	if q.Priority == "" {
		q.Priority = PriorityMedium
	}
	if q.Source == "" {
		q.Source = DefaultSource
	}
	return nil
}

// NewQuoteRecord maps a submission to its storage row. Only attachment
// metadata is stored; file bytes travel with the notification email.
func NewQuoteRecord(s *QuoteSubmission) (*QuoteRequest, error) {
	q := &QuoteRequest{
		QuoteNumber:            s.QuoteNumber,
		Name:                   s.Name,
		Email:                  s.Email,
		Phone:                  s.Phone,
		Company:                Nullable(s.Company),
		Location:               Nullable(s.Location),
		ProductType:            s.ProductType,
		Specifications:         Nullable(s.Specifications),
		Quantity:               Nullable(s.Quantity),
		BudgetRange:            Nullable(string(s.BudgetRange)),
		Timeline:               Nullable(string(s.Timeline)),
		AdditionalRequirements: Nullable(s.AdditionalRequirements),
		IPAddress:              Nullable(s.Meta.IPAddress),
		UserAgent:              Nullable(s.Meta.UserAgent),
	}

	if len(s.Attachments) > 0 {
		raw, err := json.Marshal(s.Attachments)
		if err != nil {
			return nil, err
		}
		q.Attachments = datatypes.JSON(raw)
	}
	return q, nil
}

type QuoteRepository interface {
	Create(ctx context.Context, quote *QuoteRequest) error
}

// AttachmentArchive copies quote attachments to long-term storage.
type AttachmentArchive interface {
	Archive(ctx context.Context, quoteNumber string, files []Attachment) error
}
