package booking

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/booking"
)

// Store defines persistence for bookings.
type Store = storage.Records[domain.Booking]
