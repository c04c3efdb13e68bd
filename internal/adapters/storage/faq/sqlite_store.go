package faq

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/faq"
)

var table = storage.Table[domain.FAQ]{
	Name:      "faqs",
	Columns:   []string{"id", "question", "answer", "category", "sort_order", "is_published", "created_at"},
	Published: "is_published = 1",
	Order:     []storage.Order{storage.Asc("sort_order"), storage.Asc("created_at")},
	Scan: func(s storage.Scanner) (domain.FAQ, error) {
		var f domain.FAQ
		var createdAt string
		err := s.Scan(&f.ID, &f.Question, &f.Answer, &f.Category, &f.SortOrder, &f.IsPublished, &createdAt)
		f.CreatedAt = storage.ParseTime(createdAt)
		return f, err
	},
	Values: func(f domain.FAQ) []any {
		return []any{f.ID, f.Question, f.Answer, f.Category, f.SortOrder, storage.BoolToInt(f.IsPublished), storage.FormatTime(f.CreatedAt)}
	},
	Key: func(f domain.FAQ) string { return f.ID },
}

// NewSQLiteStore creates a FAQ store.
func NewSQLiteStore(db storage.SQLDB) *storage.Gateway[domain.FAQ] {
	return storage.NewGateway(db, table)
}
