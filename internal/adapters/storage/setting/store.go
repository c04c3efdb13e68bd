package setting

import "context"

// Store defines persistence for site settings.
type Store interface {
	// All returns every stored key/value pair.
	All(ctx context.Context) (map[string]string, error)

	// Upsert sets key to value, inserting or replacing.
	// PRE: key is non-empty
	// POST: All() reports value for key
	Upsert(ctx context.Context, key, value string) error
}
