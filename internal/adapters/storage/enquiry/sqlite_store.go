package enquiry

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/enquiry"
)

var table = storage.Table[domain.Enquiry]{
	Name:    "enquiries",
	Columns: []string{"id", "name", "phone", "email", "city", "subject", "message", "status", "created_at"},
	Order:   []storage.Order{storage.Desc("created_at")},
	Scan: func(s storage.Scanner) (domain.Enquiry, error) {
		var e domain.Enquiry
		var createdAt string
		err := s.Scan(&e.ID, &e.Name, &e.Phone, &e.Email, &e.City, &e.Subject, &e.Message, &e.Status, &createdAt)
		e.CreatedAt = storage.ParseTime(createdAt)
		return e, err
	},
	Values: func(e domain.Enquiry) []any {
		return []any{e.ID, e.Name, e.Phone, e.Email, e.City, e.Subject, e.Message, e.Status, storage.FormatTime(e.CreatedAt)}
	},
	Key: func(e domain.Enquiry) string { return e.ID },
}

// NewSQLiteStore creates an enquiry store. Enquiries list newest first.
func NewSQLiteStore(db storage.SQLDB) *storage.Gateway[domain.Enquiry] {
	return storage.NewGateway(db, table)
}
