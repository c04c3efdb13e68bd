package projections

import (
	"context"

	"flotenn/internal/adapters/storage"
	"flotenn/internal/domain/audit"
)

// Lister is the read side of a record gateway.
type Lister[T any] interface {
	List(ctx context.Context, opts storage.ListOptions) ([]T, error)
}

// Counter counts records matching a filter.
type Counter interface {
	Count(ctx context.Context, opts storage.ListOptions) (int, error)
}

// ListCounter lists and counts, for paginated screens.
type ListCounter[T any] interface {
	Lister[T]
	Counter
}

// SlugGetter looks a record up by slug.
type SlugGetter[T any] interface {
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (T, error)
}

// ActivityLister reads the activity log.
type ActivityLister interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Entry, error)
}

// SettingReader reads stored site settings.
type SettingReader interface {
	All(ctx context.Context) (map[string]string, error)
}

// FailedCounter reports notification emails that exhausted their retries.
type FailedCounter interface {
	CountFailed(ctx context.Context) (int, error)
}

// published lists only rows the public site may show, in default order.
var published = storage.ListOptions{PublishedOnly: true}
