package testimonial

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/testimonial"
)

// Store defines persistence for testimonials.
type Store = storage.Records[domain.Testimonial]
