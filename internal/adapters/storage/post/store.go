package post

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/post"
)

// Store defines persistence for blog posts.
type Store = storage.Records[domain.Post]
