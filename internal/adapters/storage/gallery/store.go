package gallery

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/gallery"
)

// Store defines persistence for gallery images.
type Store = storage.Records[domain.Image]
