package email

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNoopSender_Send(t *testing.T) {
	r, err := NewNoopSender().Send(context.Background(), Message{To: []string{"hello@flotenn.in"}, Subject: "New enquiry"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !strings.HasPrefix(r.MessageID, "noop-") || r.SentAt.IsZero() {
		t.Errorf("receipt = %+v", r)
	}
}

func TestSenders_RejectEmptyRecipients(t *testing.T) {
	senders := map[string]Sender{
		"noop":   NewNoopSender(),
		"resend": NewResendSender("re_test", "Flotenn <noreply@flotenn.in>"),
	}
	for name, s := range senders {
		if _, err := s.Send(context.Background(), Message{Subject: "x"}); !errors.Is(err, ErrNoRecipients) {
			t.Errorf("%s: err = %v, want ErrNoRecipients", name, err)
		}
	}
}
