package audit

import (
	"context"

	domain "flotenn/internal/domain/audit"
)

// Store persists the activity log.
type Store interface {
	// Record appends an entry.
	// PRE: entry has been validated and has an ID
	Record(ctx context.Context, entry domain.Entry) error

	// ListRecent returns up to limit entries, newest first, with UserName
	// resolved from the users table.
	// PRE: limit > 0
	ListRecent(ctx context.Context, limit int) ([]domain.Entry, error)
}
