package post

import (
	"database/sql"

	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/post"
)

var table = storage.Table[domain.Post]{
	Name: "posts",
	Columns: []string{
		"id", "title", "slug", "excerpt", "content", "featured_image", "author", "status",
		"published_at", "meta_title", "meta_description", "created_at",
	},
	SlugColumn: "slug",
	Published:  "status = 'published'",
	Order:      []storage.Order{storage.Desc("published_at"), storage.Desc("created_at")},
	Scan: func(s storage.Scanner) (domain.Post, error) {
		var p domain.Post
		var publishedAt sql.NullString
		var createdAt string
		err := s.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.FeaturedImage, &p.Author, &p.Status,
			&publishedAt, &p.MetaTitle, &p.MetaDescription, &createdAt)
		p.PublishedAt = storage.ParseNullTime(publishedAt)
		p.CreatedAt = storage.ParseTime(createdAt)
		return p, err
	},
	Values: func(p domain.Post) []any {
		return []any{
			p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.FeaturedImage, p.Author, p.Status,
			storage.NullableTime(p.PublishedAt), p.MetaTitle, p.MetaDescription, storage.FormatTime(p.CreatedAt),
		}
	},
	Key: func(p domain.Post) string { return p.ID },
}

// NewSQLiteStore creates a post store. Posts list newest first.
func NewSQLiteStore(db storage.SQLDB) *storage.Gateway[domain.Post] {
	return storage.NewGateway(db, table)
}
