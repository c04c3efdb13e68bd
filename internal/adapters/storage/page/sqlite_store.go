package page

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/page"
)

var table = storage.Table[domain.Page]{
	Name:       "pages",
	Columns:    []string{"id", "title", "slug", "content", "is_published", "meta_title", "meta_description", "created_at"},
	SlugColumn: "slug",
	Published:  "is_published = 1",
	Order:      []storage.Order{storage.Desc("created_at")},
	Scan: func(s storage.Scanner) (domain.Page, error) {
		var p domain.Page
		var createdAt string
		err := s.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.IsPublished, &p.MetaTitle, &p.MetaDescription, &createdAt)
		p.CreatedAt = storage.ParseTime(createdAt)
		return p, err
	},
	Values: func(p domain.Page) []any {
		return []any{p.ID, p.Title, p.Slug, p.Content, storage.BoolToInt(p.IsPublished), p.MetaTitle, p.MetaDescription, storage.FormatTime(p.CreatedAt)}
	},
	Key: func(p domain.Page) string { return p.ID },
}

// NewSQLiteStore creates a page store.
func NewSQLiteStore(db storage.SQLDB) *storage.Gateway[domain.Page] {
	return storage.NewGateway(db, table)
}
