package heroslide

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/heroslide"
)

// Store defines persistence for hero slides.
type Store = storage.Records[domain.Slide]
