package media

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/media"
)

// Store defines persistence for uploaded file records.
type Store = storage.Records[domain.File]
