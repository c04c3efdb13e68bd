// Package email delivers transactional mail: enquiry notifications to the
// business and password reset links to back-office users.
package email

import (
	"context"
	"errors"
	"time"
)

// ErrNoRecipients is returned when a message has no To address.
var ErrNoRecipients = errors.New("email has no recipients")

// Message is one outgoing email.
type Message struct {
	To      []string
	From    string // empty uses the sender's default, e.g. "Flotenn <noreply@flotenn.in>"
	Subject string
	HTML    string
	ReplyTo string
}

// Receipt is the provider's acknowledgement of an accepted message.
type Receipt struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers a message through an external provider.
type Sender interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}
