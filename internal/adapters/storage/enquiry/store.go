package enquiry

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/enquiry"
)

// Store defines persistence for contact enquiries.
type Store = storage.Records[domain.Enquiry]
