package shop

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/shop"
)

var table = storage.Table[domain.Store]{
	Name: "stores",
	Columns: []string{
		"id", "name", "address", "city", "state", "pincode", "phone", "email",
		"google_map_link", "is_active", "created_at",
	},
	Published: "is_active = 1",
	Order:     []storage.Order{storage.Asc("city"), storage.Asc("name")},
	Scan: func(s storage.Scanner) (domain.Store, error) {
		var st domain.Store
		var createdAt string
		err := s.Scan(&st.ID, &st.Name, &st.Address, &st.City, &st.State, &st.Pincode, &st.Phone, &st.Email,
			&st.GoogleMapLink, &st.IsActive, &createdAt)
		st.CreatedAt = storage.ParseTime(createdAt)
		return st, err
	},
	Values: func(st domain.Store) []any {
		return []any{
			st.ID, st.Name, st.Address, st.City, st.State, st.Pincode, st.Phone, st.Email,
			st.GoogleMapLink, storage.BoolToInt(st.IsActive), storage.FormatTime(st.CreatedAt),
		}
	},
	Key: func(st domain.Store) string { return st.ID },
}

// NewSQLiteStore creates a store-location store.
func NewSQLiteStore(db storage.SQLDB) *storage.Gateway[domain.Store] {
	return storage.NewGateway(db, table)
}
