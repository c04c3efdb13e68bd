package testimonial

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/testimonial"
)

var table = storage.Table[domain.Testimonial]{
	Name:      "testimonials",
	Columns:   []string{"id", "name", "vehicle_model", "content", "rating", "is_published", "created_at"},
	Published: "is_published = 1",
	Order:     []storage.Order{storage.Desc("created_at")},
	Scan: func(s storage.Scanner) (domain.Testimonial, error) {
		var t domain.Testimonial
		var createdAt string
		err := s.Scan(&t.ID, &t.Name, &t.VehicleModel, &t.Content, &t.Rating, &t.IsPublished, &createdAt)
		t.CreatedAt = storage.ParseTime(createdAt)
		return t, err
	},
	Values: func(t domain.Testimonial) []any {
		return []any{t.ID, t.Name, t.VehicleModel, t.Content, t.Rating, storage.BoolToInt(t.IsPublished), storage.FormatTime(t.CreatedAt)}
	},
	Key: func(t domain.Testimonial) string { return t.ID },
}

// NewSQLiteStore creates a testimonial store.
func NewSQLiteStore(db storage.SQLDB) *storage.Gateway[domain.Testimonial] {
	return storage.NewGateway(db, table)
}
