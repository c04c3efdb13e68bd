package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	emailAdapter "flotenn/internal/adapters/email"
	outboxStore "flotenn/internal/adapters/storage/outbox"
	domain "flotenn/internal/domain/outbox"
)

// OutboxProcessor replays emails that failed on the request path.
type OutboxProcessor struct {
	store     outboxStore.Store
	executors map[string]ActionExecutor
	baseDelay time.Duration
	maxDelay  time.Duration
	batchSize int
	now       func() time.Time
}

// ActionExecutor executes a specific type of external action.
type ActionExecutor interface {
	// Execute runs the action with the given payload and returns the
	// provider's ID for it.
	Execute(ctx context.Context, payload string) (string, error)
}

// NewOutboxProcessor creates a new outbox processor.
func NewOutboxProcessor(store outboxStore.Store, executors map[string]ActionExecutor) *OutboxProcessor {
	return &OutboxProcessor{
		store:     store,
		executors: executors,
		baseDelay: 30 * time.Second,
		maxDelay:  1 * time.Hour,
		batchSize: 10,
		now:       time.Now,
	}
}

// ProcessPending attempts every pending entry whose backoff has elapsed.
// PRE: Context is valid
// POST: Due entries are attempted; failures are counted toward MaxAttempts
func (p *OutboxProcessor) ProcessPending(ctx context.Context) error {
	entries, err := p.store.ListPending(ctx, p.batchSize)
	if err != nil {
		return fmt.Errorf("list pending outbox entries: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.processEntry(ctx, entry); err != nil {
			slog.Error("outbox_process_failed", "entry_id", entry.ID, "action_type", entry.ActionType, "error", err.Error())
		}
	}
	return nil
}

func (p *OutboxProcessor) processEntry(ctx context.Context, entry domain.Entry) error {
	now := p.now()
	if !entry.Due(now, p.baseDelay, p.maxDelay) {
		return nil
	}

	executor, ok := p.executors[entry.ActionType]
	if !ok {
		entry.Attempts = entry.MaxAttempts
		entry.MarkFailed(fmt.Errorf("no executor registered for action type: %s", entry.ActionType))
		return p.store.Save(ctx, entry)
	}

	entry.MarkAttempt(now)
	externalID, err := executor.Execute(ctx, entry.Payload)
	if err != nil {
		entry.MarkFailed(err)
		slog.Warn("outbox_action_failed", "entry_id", entry.ID, "attempt", entry.Attempts, "status", entry.Status, "error", err.Error())
	} else {
		entry.MarkSuccess(externalID)
		slog.Info("outbox_action_succeeded", "entry_id", entry.ID, "action_type", entry.ActionType, "external_id", externalID)
	}
	return p.store.Save(ctx, entry)
}

// Resend gives a failed entry fresh attempts and tries it straight away.
// PRE: entryID names a failed entry
// POST: Entry delivered, or pending again with its first attempt counted
func (p *OutboxProcessor) Resend(ctx context.Context, entryID string) (domain.Entry, error) {
	entry, err := p.store.GetByID(ctx, entryID)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("get outbox entry: %w", err)
	}
	if err := entry.Requeue(); err != nil {
		return domain.Entry{}, err
	}
	if err := p.processEntry(ctx, entry); err != nil {
		return domain.Entry{}, fmt.Errorf("resend outbox entry: %w", err)
	}
	saved, err := p.store.GetByID(ctx, entryID)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("reload outbox entry: %w", err)
	}
	slog.Info("outbox_resend", "entry_id", entryID, "status", saved.Status)
	return saved, nil
}

// Abandon marks an entry as never to be sent.
// PRE: entryID is non-empty
// POST: Entry status set to abandoned
func (p *OutboxProcessor) Abandon(ctx context.Context, entryID string) error {
	entry, err := p.store.GetByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("get outbox entry: %w", err)
	}
	entry.MarkAbandoned()
	if err := p.store.Save(ctx, entry); err != nil {
		return fmt.Errorf("abandon outbox entry: %w", err)
	}
	slog.Info("outbox_abandoned", "entry_id", entryID)
	return nil
}

// EmailExecutor replays a parked EmailPayload through a Sender.
type EmailExecutor struct {
	Sender emailAdapter.Sender
}

// Execute sends the email stored in payload.
// PRE: payload is valid JSON matching EmailPayload
// POST: email accepted by the provider, returns its message ID
func (e *EmailExecutor) Execute(ctx context.Context, payload string) (string, error) {
	p, err := DecodeEmailPayload(payload)
	if err != nil {
		return "", err
	}
	receipt, err := e.Sender.Send(ctx, p.message())
	if err != nil {
		return "", err
	}
	return receipt.MessageID, nil
}

// StartBackgroundWorker starts a goroutine that processes pending outbox
// entries every interval until stopCh is closed. The returned channel is
// closed once the goroutine has exited.
// PRE: interval > 0
// POST: Worker runs until stopCh is closed
func StartBackgroundWorker(processor *OutboxProcessor, interval time.Duration, stopCh <-chan struct{}) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				if err := processor.ProcessPending(ctx); err != nil {
					slog.Error("outbox_background_process_failed", "error", err.Error())
				}
				cancel()
			case <-stopCh:
				slog.Info("outbox_background_worker_stopped")
				return
			}
		}
	}()
	return done
}
