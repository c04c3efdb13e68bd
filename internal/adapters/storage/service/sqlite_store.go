package service

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/service"
)

var table = storage.Table[domain.Service]{
	Name: "services",
	Columns: []string{
		"id", "name", "slug", "price_from", "image_url", "short_description", "description",
		"meta_title", "meta_description", "meta_keywords", "is_published", "created_at",
	},
	SlugColumn: "slug",
	Published:  "is_published = 1",
	Order:      []storage.Order{storage.Asc("created_at")},
	Scan: func(s storage.Scanner) (domain.Service, error) {
		var svc domain.Service
		var createdAt string
		err := s.Scan(&svc.ID, &svc.Name, &svc.Slug, &svc.PriceFrom, &svc.ImageURL, &svc.ShortDescription,
			&svc.Description, &svc.MetaTitle, &svc.MetaDescription, &svc.MetaKeywords, &svc.IsPublished, &createdAt)
		svc.CreatedAt = storage.ParseTime(createdAt)
		return svc, err
	},
	Values: func(svc domain.Service) []any {
		return []any{
			svc.ID, svc.Name, svc.Slug, svc.PriceFrom, svc.ImageURL, svc.ShortDescription, svc.Description,
			svc.MetaTitle, svc.MetaDescription, svc.MetaKeywords, storage.BoolToInt(svc.IsPublished),
			storage.FormatTime(svc.CreatedAt),
		}
	},
	Key: func(svc domain.Service) string { return svc.ID },
}

// NewSQLiteStore creates a service store.
func NewSQLiteStore(db storage.SQLDB) *storage.Gateway[domain.Service] {
	return storage.NewGateway(db, table)
}
