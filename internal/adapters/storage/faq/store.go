package faq

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/faq"
)

// Store defines persistence for FAQs.
type Store = storage.Records[domain.FAQ]
