package orchestrators

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"

	"flotenn/internal/domain/outbox"
)

func queuedEmail(t *testing.T, id string) outbox.Entry {
	t.Helper()
	payload, err := json.Marshal(EmailPayload{To: []string{"hello@flotenn.in"}, Subject: "Lead " + id, HTML: "<p>x</p>"})
	if err != nil {
		t.Fatal(err)
	}
	return outbox.New(id, outbox.ActionTypeEmail, string(payload), fixedNow.Add(-time.Hour))
}

func newTestProcessor(store *mockOutboxStore, sender *mockSender, now *time.Time) *OutboxProcessor {
	p := NewOutboxProcessor(store, map[string]ActionExecutor{
		outbox.ActionTypeEmail: &EmailExecutor{Sender: sender},
	})
	p.now = func() time.Time { return *now }
	return p
}

func TestOutboxProcessor_DeliversPending(t *testing.T) {
	store := newMockOutboxStore()
	store.entries["ob-1"] = queuedEmail(t, "ob-1")
	sender := &mockSender{}
	now := fixedNow

	if err := newTestProcessor(store, sender, &now).ProcessPending(context.Background()); err != nil {
		t.Fatal(err)
	}
	got := store.entries["ob-1"]
	if got.Status != outbox.StatusDone || got.ExternalID != "msg-1" || got.Attempts != 1 {
		t.Errorf("entry = %+v", got)
	}
	if len(sender.sent) != 1 || sender.sent[0].Subject != "Lead ob-1" {
		t.Errorf("sent = %+v", sender.sent)
	}
}

func TestOutboxProcessor_BackoffAndGiveUp(t *testing.T) {
	store := newMockOutboxStore()
	store.entries["ob-1"] = queuedEmail(t, "ob-1")
	sender := &mockSender{err: errors.New("provider down")}
	now := fixedNow
	p := newTestProcessor(store, sender, &now)
	ctx := context.Background()

	if err := p.ProcessPending(ctx); err != nil {
		t.Fatal(err)
	}
	if got := store.entries["ob-1"]; got.Status != outbox.StatusRetrying || got.Attempts != 1 {
		t.Fatalf("after first failure: %+v", got)
	}

	// Not due yet: the attempt count must not move.
	now = now.Add(time.Second)
	if err := p.ProcessPending(ctx); err != nil {
		t.Fatal(err)
	}
	if got := store.entries["ob-1"]; got.Attempts != 1 {
		t.Fatalf("retried before backoff elapsed: attempts = %d", got.Attempts)
	}

	for i := 0; i < outbox.DefaultMaxAttempts; i++ {
		now = now.Add(2 * time.Hour)
		if err := p.ProcessPending(ctx); err != nil {
			t.Fatal(err)
		}
	}
	got := store.entries["ob-1"]
	if got.Status != outbox.StatusFailed || got.Attempts != outbox.DefaultMaxAttempts {
		t.Errorf("after exhausting retries: %+v", got)
	}
	if n, _ := store.CountFailed(ctx); n != 1 {
		t.Errorf("CountFailed = %d", n)
	}
}

func TestOutboxProcessor_UnknownActionFailsImmediately(t *testing.T) {
	store := newMockOutboxStore()
	store.entries["ob-1"] = outbox.New("ob-1", "sms", "{}", fixedNow)
	now := fixedNow
	if err := newTestProcessor(store, &mockSender{}, &now).ProcessPending(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := store.entries["ob-1"]; got.Status != outbox.StatusFailed {
		t.Errorf("status = %q, want failed", got.Status)
	}
}

func TestEmailExecutor_BadPayload(t *testing.T) {
	e := &EmailExecutor{Sender: &mockSender{}}
	if _, err := e.Execute(context.Background(), "not json"); err == nil {
		t.Error("expected unmarshal error")
	}
}

func TestStartBackgroundWorker_Stops(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := newMockOutboxStore()
	store.entries["ob-1"] = queuedEmail(t, "ob-1")
	sender := &mockSender{}
	p := NewOutboxProcessor(store, map[string]ActionExecutor{outbox.ActionTypeEmail: &EmailExecutor{Sender: sender}})

	stop := make(chan struct{})
	done := StartBackgroundWorker(p, 5*time.Millisecond, stop)

	deadline := time.After(2 * time.Second)
	for {
		sender.mu.Lock()
		n := len(sender.sent)
		sender.mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("worker never delivered the queued email")
		case <-time.After(5 * time.Millisecond):
		}
	}
	close(stop)
	<-done
}

func TestOutboxProcessor_ResendAndAbandon(t *testing.T) {
	store := newMockOutboxStore()
	failed := queuedEmail(t, "ob-1")
	failed.Status = outbox.StatusFailed
	failed.Attempts = failed.MaxAttempts
	failed.LastAttemptedAt = fixedNow
	store.entries["ob-1"] = failed
	store.entries["ob-2"] = queuedEmail(t, "ob-2")
	sender := &mockSender{}
	now := fixedNow
	p := newTestProcessor(store, sender, &now)
	ctx := context.Background()

	got, err := p.Resend(ctx, "ob-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != outbox.StatusDone || got.Attempts != 1 || len(sender.sent) != 1 {
		t.Errorf("after resend: %+v, sent %d", got, len(sender.sent))
	}

	if _, err := p.Resend(ctx, "ob-2"); !errors.Is(err, outbox.ErrNotFailed) {
		t.Errorf("resend pending entry: %v", err)
	}
	if err := p.Abandon(ctx, "ob-2"); err != nil {
		t.Fatal(err)
	}
	if store.entries["ob-2"].Status != outbox.StatusAbandoned {
		t.Errorf("ob-2 = %+v", store.entries["ob-2"])
	}
}
