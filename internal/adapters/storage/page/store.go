package page

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/page"
)

// Store defines persistence for CMS pages.
type Store = storage.Records[domain.Page]
