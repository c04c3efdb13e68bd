package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// NoopSender logs messages instead of delivering them. It is used when no
// provider key is configured.
type NoopSender struct{}

// NewNoopSender creates a NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send logs msg and reports it as accepted.
func (s *NoopSender) Send(_ context.Context, msg Message) (Receipt, error) {
	if len(msg.To) == 0 {
		return Receipt{}, ErrNoRecipients
	}
	id := "noop-" + uuid.NewString()
	slog.Info("email_sent", "provider", "noop", "message_id", id, "to", msg.To, "subject", msg.Subject)
	return Receipt{MessageID: id, SentAt: time.Now()}, nil
}
