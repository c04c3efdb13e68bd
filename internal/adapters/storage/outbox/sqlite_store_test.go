package outbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/outbox"
)

func TestSQLiteStore_Lifecycle(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	defer db.Close()
	if err := storage.MigrateDB(db); err != nil {
		t.Fatal(err)
	}
	s := NewSQLiteStore(db)
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

	first := domain.New("o1", domain.ActionTypeEmail, `{"subject":"a"}`, now)
	second := domain.New("o2", domain.ActionTypeEmail, `{"subject":"b"}`, now.Add(time.Second))
	for _, e := range []domain.Entry{second, first} {
		if err := s.Save(ctx, e); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	pending, err := s.ListPending(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 || pending[0].ID != "o1" {
		t.Fatalf("pending = %+v, want o1 first", pending)
	}

	first.MarkAttempt(now.Add(time.Minute))
	first.MarkSuccess("msg-1")
	if err := s.Save(ctx, first); err != nil {
		t.Fatal(err)
	}
	second.MaxAttempts = 1
	second.MarkAttempt(now.Add(time.Minute))
	second.MarkFailed(fmt.Errorf("smtp down"))
	if err := s.Save(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetByID(ctx, "o1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.StatusDone || got.ExternalID != "msg-1" || got.Attempts != 1 || !got.LastAttemptedAt.Equal(now.Add(time.Minute)) {
		t.Errorf("o1 = %+v", got)
	}
	if pending, _ = s.ListPending(ctx, 10); len(pending) != 0 {
		t.Errorf("pending after processing = %+v", pending)
	}
	if n, _ := s.CountFailed(ctx); n != 1 {
		t.Errorf("CountFailed = %d, want 1", n)
	}
	failed, err := s.ListFailed(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(failed) != 1 || failed[0].ID != "o2" || failed[0].ErrorMessage != "smtp down" {
		t.Errorf("ListFailed = %+v", failed)
	}
	if _, err := s.GetByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing err = %v", err)
	}
}
