package gallery

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/gallery"
)

var table = storage.Table[domain.Image]{
	Name:      "gallery_images",
	Columns:   []string{"id", "title", "image_path", "category", "description", "sort_order", "is_published", "created_at"},
	Published: "is_published = 1",
	Order:     []storage.Order{storage.Asc("sort_order"), storage.Asc("created_at")},
	Scan: func(s storage.Scanner) (domain.Image, error) {
		var img domain.Image
		var createdAt string
		err := s.Scan(&img.ID, &img.Title, &img.ImagePath, &img.Category, &img.Description, &img.SortOrder, &img.IsPublished, &createdAt)
		img.CreatedAt = storage.ParseTime(createdAt)
		return img, err
	},
	Values: func(img domain.Image) []any {
		return []any{img.ID, img.Title, img.ImagePath, img.Category, img.Description, img.SortOrder, storage.BoolToInt(img.IsPublished), storage.FormatTime(img.CreatedAt)}
	},
	Key: func(img domain.Image) string { return img.ID },
}

// NewSQLiteStore creates a gallery store.
func NewSQLiteStore(db storage.SQLDB) *storage.Gateway[domain.Image] {
	return storage.NewGateway(db, table)
}
