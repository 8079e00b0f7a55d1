package email

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhillyerd/enmime"
)

// Message is one plain-text outbound email.
type Message struct {
	FromName string
	From     string
	ToName   string
	To       string
	ReplyTo  string
	Subject  string
	Text     string

	Attachments []Attachment
}

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewMessageID returns an RFC 5322 Message-ID scoped to the sender's domain.
func NewMessageID(from string) string {
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

// Build renders msg as a MIME document ready for DATA.
func Build(msg Message, messageID string, date time.Time) ([]byte, error) {
	b := enmime.Builder().
		From(msg.FromName, msg.From).
		To(msg.ToName, msg.To).
		Subject(msg.Subject).
		Date(date).
		Header("Message-ID", messageID).
		Text([]byte(msg.Text))

	if msg.ReplyTo != "" {
		b = b.ReplyTo("", msg.ReplyTo)
	}
	// Reader-backed parts are always base64, so text files keep their bytes.
	for _, a := range msg.Attachments {
		b = b.AddAttachmentWithReader(bytes.NewReader(a.Data), a.ContentType, a.Filename)
	}

	part, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build message: %w", err)
	}

	var buf bytes.Buffer
	if err := part.Encode(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	return buf.Bytes(), nil
}
