package domain

import (
	"context"

	"go-inquiry-backend/pkg/email"
)

// Notifier sends one message and returns the provider Message-ID.
// Callers make at most one attempt per message.
type Notifier interface {
	Send(ctx context.Context, msg email.Message) (string, error)
}
