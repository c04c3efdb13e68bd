package shop

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/shop"
)

// Store defines persistence for store locations.
type Store = storage.Records[domain.Store]
