package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"flotenn/internal/domain/audit"
)

// ActivityStore is the activity log surface the orchestrators write to.
type ActivityStore interface {
	Record(ctx context.Context, entry audit.Entry) error
}

// RecordActivityDeps holds dependencies for RecordActivity.
type RecordActivityDeps struct {
	ActivityStore ActivityStore
	GenerateID    func() string
	Now           func() time.Time
}

// RecordActivityInput describes one operator action.
type RecordActivityInput struct {
	UserID     string
	Action     audit.Action
	EntityType string
	EntityID   string
	Details    string
}

// ExecuteRecordActivity appends an entry to the activity log.
// PRE: input.Action is non-empty
// POST: Entry stored with a fresh ID and the current time
func ExecuteRecordActivity(ctx context.Context, input RecordActivityInput, deps RecordActivityDeps) error {
	entry := audit.NewEntry(input.UserID, input.Action, deps.Now()).
		WithEntity(input.EntityType, input.EntityID).
		WithDetails(input.Details)
	entry.ID = deps.GenerateID()
	if err := entry.Validate(); err != nil {
		return err
	}
	if err := deps.ActivityStore.Record(ctx, entry); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// logActivity records input and only logs a failure. A lost log line never
// fails the mutation it describes.
func logActivity(ctx context.Context, input RecordActivityInput, deps RecordActivityDeps) {
	if deps.ActivityStore == nil {
		return
	}
	if err := ExecuteRecordActivity(ctx, input, deps); err != nil {
		slog.Error("activity_log_failed", "action", input.Action, "entity_type", input.EntityType, "entity_id", input.EntityID, "error", err)
	}
}
