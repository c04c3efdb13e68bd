package heroslide

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/heroslide"
)

var table = storage.Table[domain.Slide]{
	Name: "hero_slides",
	Columns: []string{
		"id", "title", "subtitle", "description", "image_url", "button_text", "button_link",
		"sort_order", "is_active", "created_at",
	},
	Published: "is_active = 1",
	Order:     []storage.Order{storage.Asc("sort_order"), storage.Asc("created_at")},
	Scan: func(s storage.Scanner) (domain.Slide, error) {
		var sl domain.Slide
		var createdAt string
		err := s.Scan(&sl.ID, &sl.Title, &sl.Subtitle, &sl.Description, &sl.ImageURL, &sl.ButtonText, &sl.ButtonLink,
			&sl.SortOrder, &sl.IsActive, &createdAt)
		sl.CreatedAt = storage.ParseTime(createdAt)
		return sl, err
	},
	Values: func(sl domain.Slide) []any {
		return []any{
			sl.ID, sl.Title, sl.Subtitle, sl.Description, sl.ImageURL, sl.ButtonText, sl.ButtonLink,
			sl.SortOrder, storage.BoolToInt(sl.IsActive), storage.FormatTime(sl.CreatedAt),
		}
	},
	Key: func(sl domain.Slide) string { return sl.ID },
}

// NewSQLiteStore creates a hero slide store. Slides list in display order.
func NewSQLiteStore(db storage.SQLDB) *storage.Gateway[domain.Slide] {
	return storage.NewGateway(db, table)
}
