package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"flotenn/internal/adapters/storage"
	"flotenn/internal/domain/audit"
)

// ErrSlugTaken is returned when a slugged record collides with another.
var ErrSlugTaken = errors.New("that slug is already used, pick another")

// ContentStore is the record gateway surface the content orchestrators need.
type ContentStore[T any] interface {
	Get(ctx context.Context, key string) (T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, key string, rec T) (T, error)
	Delete(ctx context.Context, key string) error
}

// ContentKind describes how to handle one content type generically.
type ContentKind[T any] struct {
	EntityType string // activity log entity, e.g. "service"
	// Prepare stamps ID and CreatedAt on a new record, carries fields the
	// form does not edit over from existing, and validates.
	Prepare func(rec *T, existing *T, id string, now time.Time) error
	Label   func(rec T) string // shown in the activity log
}

// SaveContentInput carries one edited record.
type SaveContentInput[T any] struct {
	Key     string // empty creates
	Record  T
	ActorID string
}

// ContentDeps holds dependencies for the content orchestrators.
type ContentDeps[T any] struct {
	Store      ContentStore[T]
	Kind       ContentKind[T]
	Activity   RecordActivityDeps
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteSaveContent creates a record, or replaces the one at input.Key.
// PRE: deps.Kind.Prepare validates the record
// POST: Record stored; the change is in the activity log
func ExecuteSaveContent[T any](ctx context.Context, input SaveContentInput[T], deps ContentDeps[T]) (T, error) {
	var zero T
	rec := input.Record
	now := deps.Now()

	var saved T
	var err error
	key := input.Key
	action := audit.ActionCreate
	if key == "" {
		key = deps.GenerateID()
		if err := deps.Kind.Prepare(&rec, nil, key, now); err != nil {
			return zero, err
		}
		saved, err = deps.Store.Create(ctx, rec)
	} else {
		action = audit.ActionUpdate
		existing, getErr := deps.Store.Get(ctx, input.Key)
		if getErr != nil {
			return zero, fmt.Errorf("load %s: %w", deps.Kind.EntityType, getErr)
		}
		if err := deps.Kind.Prepare(&rec, &existing, input.Key, now); err != nil {
			return zero, err
		}
		saved, err = deps.Store.Update(ctx, input.Key, rec)
	}
	if errors.Is(err, storage.ErrDuplicate) {
		return zero, ErrSlugTaken
	}
	if err != nil {
		return zero, fmt.Errorf("save %s: %w", deps.Kind.EntityType, err)
	}

	label := ""
	if deps.Kind.Label != nil {
		label = deps.Kind.Label(saved)
	}
	slog.Info("content_saved", "entity_type", deps.Kind.EntityType, "action", action, "label", label)
	logActivity(ctx, RecordActivityInput{
		UserID: input.ActorID, Action: action, EntityType: deps.Kind.EntityType,
		EntityID: key, Details: label,
	}, deps.Activity)
	return saved, nil
}

// ExecuteDeleteContent removes the record at key.
// POST: Record gone; the deletion is in the activity log
func ExecuteDeleteContent[T any](ctx context.Context, key, actorID string, deps ContentDeps[T]) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	label := ""
	if deps.Kind.Label != nil {
		if rec, err := deps.Store.Get(ctx, key); err == nil {
			label = deps.Kind.Label(rec)
		}
	}
	if err := deps.Store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", deps.Kind.EntityType, err)
	}
	slog.Info("content_deleted", "entity_type", deps.Kind.EntityType, "key", key)
	logActivity(ctx, RecordActivityInput{
		UserID: actorID, Action: audit.ActionDelete, EntityType: deps.Kind.EntityType,
		EntityID: key, Details: label,
	}, deps.Activity)
	return nil
}
