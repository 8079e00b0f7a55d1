package usecase

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"
	"time"

	"go-inquiry-backend/config"
	"go-inquiry-backend/internal/domain"
	"go-inquiry-backend/pkg/email"
)

const submittedAtLayout = "January 2, 2006 at 3:04 PM MST"

var contactNotificationTmpl = template.Must(template.New(domain.TemplateContactForm).Parse(
	`New Contact Form Submission
{{- if .RecordID}}
Reference: #{{.RecordID}}
{{- end}}

Name: {{.Contact.Name}}
Email: {{.Contact.Email}}
Phone: {{or .Contact.Phone "Not provided"}}
Company: {{or .Contact.Company "Not provided"}}
Subject: {{.Contact.Subject}}

Message:
{{.Contact.Message}}

Submitted on: {{.SubmittedAt}}
`))

var contactAutoReplyTmpl = template.Must(template.New(domain.TemplateContactAutoReply).Parse(
	`Dear {{.Contact.Name}},

Thank you for contacting {{.Brand}}. We have received your message and appreciate your interest in our products and services.

Our team will review your inquiry and get back to you within 24 hours. In the meantime, feel free to explore our product range on our website.

Your Message Summary:
Subject: {{.Contact.Subject}}
Submitted on: {{.SubmittedAt}}
{{- if .RecordID}}
Reference: #{{.RecordID}}
{{- end}}
{{template "signature" .}}`))

var quoteNotificationTmpl = template.Must(template.New(domain.TemplateQuoteRequest).Parse(
	`New Quote Request
Quote Number: {{.Quote.QuoteNumber}}
{{- if .RecordID}}
Reference: #{{.RecordID}}
{{- end}}

Customer Information:
Name: {{.Quote.Name}}
Email: {{.Quote.Email}}
Phone: {{.Quote.Phone}}
Company: {{or .Quote.Company "Not provided"}}
Location: {{or .Quote.Location "Not provided"}}

Product Requirements:
Product Type: {{.Quote.ProductType}}
Specifications: {{or .Quote.Specifications "Not specified"}}
Quantity: {{or .Quote.Quantity "Not specified"}}
Budget Range: {{or .Quote.BudgetRange "Not specified"}}
Timeline: {{or .Quote.Timeline "Not specified"}}
{{- if .Quote.AdditionalRequirements}}

Additional Requirements:
{{.Quote.AdditionalRequirements}}
{{- end}}
{{- if .Quote.Attachments}}

Attachments ({{len .Quote.Attachments}}):
{{- range .Quote.Attachments}}
- {{.Filename}} ({{.ContentType}}, {{.Size}} bytes)
{{- end}}
{{- end}}

Submitted on: {{.SubmittedAt}}
`))

var quoteConfirmationTmpl = template.Must(template.New(domain.TemplateQuoteConfirmation).Parse(
	`Dear {{.Quote.Name}},

Thank you for your quote request for {{.Quote.ProductType}}. We have received your inquiry and our technical team will review your requirements.

We will prepare a detailed quotation and get back to you within 2-3 business days. Our team may contact you for any additional clarifications if needed.

Request Summary:
Quote Number: {{.Quote.QuoteNumber}}
Product Type: {{.Quote.ProductType}}
Quantity: {{or .Quote.Quantity "Not specified"}}
Timeline: {{or .Quote.Timeline "Not specified"}}
Budget Range: {{or .Quote.BudgetRange "Not specified"}}
Submitted on: {{.SubmittedAt}}
{{template "signature" .}}`))

const signatureTmpl = `{{define "signature"}}
Need Immediate Assistance?
Email: {{.CompanyEmail}}
{{- if .CompanyPhone}}
Phone: {{.CompanyPhone}}
{{- end}}
{{- if .Website}}
Website: {{.Website}}
{{- end}}

Best regards,
{{.Brand}} Team
{{end}}`

func init() {
	template.Must(contactAutoReplyTmpl.Parse(signatureTmpl))
	template.Must(quoteConfirmationTmpl.Parse(signatureTmpl))
}

type templateData struct {
	Contact *domain.ContactSubmission
	Quote   *domain.QuoteSubmission

	RecordID     string
	SubmittedAt  string
	Brand        string
	CompanyEmail string
	CompanyPhone string
	Website      string
}

// messageBuilder renders the plain-text messages for both submission kinds.
type messageBuilder struct {
	cfg config.EmailConfig
}

func (b messageBuilder) data(recordID *uint, at time.Time) templateData {
	d := templateData{
		SubmittedAt:  at.Format(submittedAtLayout),
		Brand:        b.cfg.BrandName,
		CompanyEmail: b.cfg.NotificationAddress(),
		CompanyPhone: b.cfg.CompanyPhone,
		Website:      b.cfg.CompanyWebsite,
	}
	if recordID != nil {
		d.RecordID = strconv.FormatUint(uint64(*recordID), 10)
	}
	return d
}

func (b messageBuilder) base() email.Message {
	return email.Message{
		FromName: b.cfg.CompanyName,
		From:     b.cfg.User,
	}
}

func (b messageBuilder) ContactNotification(sub *domain.ContactSubmission, recordID *uint, at time.Time) (email.Message, error) {
	d := b.data(recordID, at)
	d.Contact = sub

	msg := b.base()
	msg.ToName = domain.AdminRecipientName
	msg.To = b.cfg.NotificationAddress()
	msg.ReplyTo = sub.Email
	msg.Subject = "New Contact Form Submission from " + sub.Name
	return render(msg, contactNotificationTmpl, d)
}

func (b messageBuilder) ContactAutoReply(sub *domain.ContactSubmission, recordID *uint, at time.Time) (email.Message, error) {
	d := b.data(recordID, at)
	d.Contact = sub

	msg := b.base()
	msg.ToName = sub.Name
	msg.To = sub.Email
	msg.Subject = "Thank you for contacting " + b.cfg.BrandName
	return render(msg, contactAutoReplyTmpl, d)
}

// QuoteNotification carries the uploaded files as attachments.
func (b messageBuilder) QuoteNotification(sub *domain.QuoteSubmission, recordID *uint, at time.Time) (email.Message, error) {
	d := b.data(recordID, at)
	d.Quote = sub

	msg := b.base()
	msg.ToName = domain.AdminRecipientName
	msg.To = b.cfg.NotificationAddress()
	msg.ReplyTo = sub.Email
	msg.Subject = fmt.Sprintf("New Quote Request from %s - %s - Quote #%s", sub.Name, sub.ProductType, sub.QuoteNumber)
	for _, a := range sub.Attachments {
		msg.Attachments = append(msg.Attachments, email.Attachment{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Data:        a.Data,
		})
	}
	return render(msg, quoteNotificationTmpl, d)
}

func (b messageBuilder) QuoteConfirmation(sub *domain.QuoteSubmission, recordID *uint, at time.Time) (email.Message, error) {
	d := b.data(recordID, at)
	d.Quote = sub

	msg := b.base()
	msg.ToName = sub.Name
	msg.To = sub.Email
	msg.Subject = fmt.Sprintf("Quote Request Received - Quote #%s - %s", sub.QuoteNumber, b.cfg.BrandName)
	return render(msg, quoteConfirmationTmpl, d)
}

func render(msg email.Message, tmpl *template.Template, data templateData) (email.Message, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return msg, fmt.Errorf("failed to render %s: %w", tmpl.Name(), err)
	}
	msg.Text = buf.String()
	return msg, nil
}
