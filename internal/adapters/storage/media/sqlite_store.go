package media

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/media"
)

var table = storage.Table[domain.File]{
	Name:    "media",
	Columns: []string{"id", "filename", "original_name", "mime_type", "size", "path", "created_at"},
	Order:   []storage.Order{storage.Desc("created_at")},
	Scan: func(s storage.Scanner) (domain.File, error) {
		var f domain.File
		var createdAt string
		err := s.Scan(&f.ID, &f.Filename, &f.OriginalName, &f.MimeType, &f.Size, &f.Path, &createdAt)
		f.CreatedAt = storage.ParseTime(createdAt)
		return f, err
	},
	Values: func(f domain.File) []any {
		return []any{f.ID, f.Filename, f.OriginalName, f.MimeType, f.Size, f.Path, storage.FormatTime(f.CreatedAt)}
	},
	Key: func(f domain.File) string { return f.ID },
}

// NewSQLiteStore creates a media record store.
func NewSQLiteStore(db storage.SQLDB) *storage.Gateway[domain.File] {
	return storage.NewGateway(db, table)
}
