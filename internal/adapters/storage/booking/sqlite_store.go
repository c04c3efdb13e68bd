package booking

import (
	"database/sql"

	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/booking"
)

var table = storage.Table[domain.Booking]{
	Name: "bookings",
	Columns: []string{
		"id", "customer_name", "customer_phone", "customer_email", "service_id", "service_type",
		"vehicle_details", "booking_date", "notes", "status", "created_at",
	},
	Order: []storage.Order{storage.Desc("created_at")},
	Scan: func(s storage.Scanner) (domain.Booking, error) {
		var b domain.Booking
		var bookingDate sql.NullString
		var createdAt string
		err := s.Scan(&b.ID, &b.CustomerName, &b.CustomerPhone, &b.CustomerEmail, &b.ServiceID, &b.ServiceType,
			&b.VehicleDetails, &bookingDate, &b.Notes, &b.Status, &createdAt)
		b.BookingDate = storage.ParseNullTime(bookingDate)
		b.CreatedAt = storage.ParseTime(createdAt)
		return b, err
	},
	Values: func(b domain.Booking) []any {
		return []any{
			b.ID, b.CustomerName, b.CustomerPhone, b.CustomerEmail, b.ServiceID, b.ServiceType,
			b.VehicleDetails, storage.NullableTime(b.BookingDate), b.Notes, b.Status, storage.FormatTime(b.CreatedAt),
		}
	},
	Key: func(b domain.Booking) string { return b.ID },
}

// NewSQLiteStore creates a booking store. Bookings list newest first.
func NewSQLiteStore(db storage.SQLDB) *storage.Gateway[domain.Booking] {
	return storage.NewGateway(db, table)
}
