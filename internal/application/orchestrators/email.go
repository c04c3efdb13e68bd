package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	emailAdapter "flotenn/internal/adapters/email"
	"flotenn/internal/domain/outbox"
)

// OutboxStoreForEnqueue defines the store interface needed to park a failed email.
type OutboxStoreForEnqueue interface {
	Save(ctx context.Context, e outbox.Entry) error
}

// SendEmailDeps holds dependencies for SendEmail.
type SendEmailDeps struct {
	Sender      emailAdapter.Sender
	OutboxStore OutboxStoreForEnqueue // nil disables retry
	GenerateID  func() string
	Now         func() time.Time
}

// EmailPayload is the JSON stored in an outbox entry for a parked email.
type EmailPayload struct {
	To      []string `json:"to"`
	From    string   `json:"from,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

func payloadFromMessage(msg emailAdapter.Message) EmailPayload {
	return EmailPayload{To: msg.To, From: msg.From, Subject: msg.Subject, HTML: msg.HTML, ReplyTo: msg.ReplyTo}
}

// DecodeEmailPayload parses an outbox payload.
func DecodeEmailPayload(payload string) (EmailPayload, error) {
	var p EmailPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return EmailPayload{}, fmt.Errorf("unmarshal payload: %w", err)
	}
	return p, nil
}

// Recipients joins the To addresses for display.
func (p EmailPayload) Recipients() string {
	return strings.Join(p.To, ", ")
}

func (p EmailPayload) message() emailAdapter.Message {
	return emailAdapter.Message{To: p.To, From: p.From, Subject: p.Subject, HTML: p.HTML, ReplyTo: p.ReplyTo}
}

// SendEmailResult reports what happened to a message.
type SendEmailResult struct {
	MessageID string // set when delivered now
	OutboxID  string // set when parked for retry
}

// ExecuteSendEmail sends msg right away and parks it in the outbox when the
// provider refuses it.
// PRE: msg has at least one recipient
// POST: Either delivered (MessageID set) or queued (OutboxID set)
func ExecuteSendEmail(ctx context.Context, msg emailAdapter.Message, deps SendEmailDeps) (SendEmailResult, error) {
	if len(msg.To) == 0 {
		return SendEmailResult{}, emailAdapter.ErrNoRecipients
	}
	receipt, sendErr := deps.Sender.Send(ctx, msg)
	if sendErr == nil {
		return SendEmailResult{MessageID: receipt.MessageID}, nil
	}
	if deps.OutboxStore == nil {
		return SendEmailResult{}, fmt.Errorf("send email: %w", sendErr)
	}

	payload, err := json.Marshal(payloadFromMessage(msg))
	if err != nil {
		return SendEmailResult{}, fmt.Errorf("marshal email payload: %w", err)
	}
	entry := outbox.New(deps.GenerateID(), outbox.ActionTypeEmail, string(payload), deps.Now())
	entry.ErrorMessage = sendErr.Error()
	if err := entry.Validate(); err != nil {
		return SendEmailResult{}, err
	}
	if err := deps.OutboxStore.Save(ctx, entry); err != nil {
		return SendEmailResult{}, fmt.Errorf("send email: %w (and could not queue retry: %v)", sendErr, err)
	}

	slog.Warn("email_queued_for_retry", "outbox_id", entry.ID, "subject", msg.Subject, "error", sendErr)
	return SendEmailResult{OutboxID: entry.ID}, nil
}
