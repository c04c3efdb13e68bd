package projections

import (
	"context"
	"errors"

	"flotenn/internal/adapters/storage"
	"flotenn/internal/domain/audit"
)

var errStore = errors.New("backend unavailable")

// mockList returns items honouring Limit and Offset, or err.
type mockList[T any] struct {
	items []T
	err   error
	// match filters items for Count/List when the options carry Filters.
	match func(T, []storage.Filter) bool
	calls []storage.ListOptions
}

func (m *mockList[T]) filtered(opts storage.ListOptions) []T {
	if m.match == nil || len(opts.Filters) == 0 {
		return m.items
	}
	var out []T
	for _, it := range m.items {
		if m.match(it, opts.Filters) {
			out = append(out, it)
		}
	}
	return out
}

func (m *mockList[T]) List(_ context.Context, opts storage.ListOptions) ([]T, error) {
	m.calls = append(m.calls, opts)
	if m.err != nil {
		return nil, m.err
	}
	items := m.filtered(opts)
	if opts.Offset >= len(items) {
		return []T{}, nil
	}
	items = items[opts.Offset:]
	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}
	return items, nil
}

func (m *mockList[T]) Count(_ context.Context, opts storage.ListOptions) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.filtered(opts)), nil
}

type mockActivity struct {
	entries []audit.Entry
	limit   int
}

func (m *mockActivity) ListRecent(_ context.Context, limit int) ([]audit.Entry, error) {
	m.limit = limit
	return m.entries, nil
}

type mockSettings struct {
	values map[string]string
	err    error
}

func (m *mockSettings) All(_ context.Context) (map[string]string, error) {
	return m.values, m.err
}

type mockFailed struct{ n int }

func (m *mockFailed) CountFailed(_ context.Context) (int, error) { return m.n, nil }
