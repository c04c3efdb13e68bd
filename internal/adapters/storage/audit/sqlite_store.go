package audit

import (
	"context"
	"database/sql"
	"fmt"

	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/audit"
)

var table = storage.Table[domain.Entry]{
	Name:    "activity_logs",
	Columns: []string{"id", "user_id", "action", "entity_type", "entity_id", "details", "created_at"},
	Order:   []storage.Order{storage.Desc("created_at")},
	Scan: func(s storage.Scanner) (domain.Entry, error) {
		var e domain.Entry
		var action, createdAt string
		err := s.Scan(&e.ID, &e.UserID, &action, &e.EntityType, &e.EntityID, &e.Details, &createdAt)
		e.Action = domain.Action(action)
		e.CreatedAt = storage.ParseTime(createdAt)
		return e, err
	},
	Values: func(e domain.Entry) []any {
		return []any{e.ID, e.UserID, string(e.Action), e.EntityType, e.EntityID, e.Details, storage.FormatTime(e.CreatedAt)}
	},
	Key: func(e domain.Entry) string { return e.ID },
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	entries *storage.Gateway[domain.Entry]
	db      storage.SQLDB
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates an activity log store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{entries: storage.NewGateway(db, table), db: db}
}

// Record persists an activity entry.
func (s *SQLiteStore) Record(ctx context.Context, e domain.Entry) error {
	_, err := s.entries.Create(ctx, e)
	return err
}

// ListRecent returns the newest entries joined with the acting user's name.
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT l.id, l.user_id, l.action, l.entity_type, l.entity_id, l.details, l.created_at, u.name
		 FROM activity_logs l LEFT JOIN users u ON u.id = l.user_id
		 ORDER BY l.created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity_logs: %w", err)
	}
	defer rows.Close()

	out := []domain.Entry{}
	for rows.Next() {
		var e domain.Entry
		var action, createdAt string
		var name sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &action, &e.EntityType, &e.EntityID, &e.Details, &createdAt, &name); err != nil {
			return nil, err
		}
		e.Action = domain.Action(action)
		e.CreatedAt = storage.ParseTime(createdAt)
		e.UserName = name.String
		out = append(out, e)
	}
	return out, rows.Err()
}
