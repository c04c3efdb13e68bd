package service

import (
	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/service"
)

// Store defines persistence for services.
type Store = storage.Records[domain.Service]
