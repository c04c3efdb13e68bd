package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Record gateway errors.
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicate     = errors.New("a record with the same unique value already exists")
	ErrUnknownColumn = errors.New("unknown column")
	ErrEmptyKey      = errors.New("record key is required")
	ErrNoSlug        = errors.New("content type has no slug")
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Order is one ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

// Asc and Desc build Order terms.
func Asc(col string) Order  { return Order{Column: col} }
func Desc(col string) Order { return Order{Column: col, Desc: true} }

// Filter is an equality condition on one column.
type Filter struct {
	Column string
	Value  any
}

// ListOptions narrows a List or Count call.
type ListOptions struct {
	PublishedOnly bool     // restrict to rows the public site may show
	Filters       []Filter // ANDed equality filters
	OrderBy       []Order  // empty uses the table's default order
	Limit         int      // 0 means no limit
	Offset        int
}

// Table maps one content type onto a SQLite table.
type Table[T any] struct {
	Name       string
	Columns    []string // Columns[0] is the primary key
	SlugColumn string   // empty when the type has no slug
	Published  string   // SQL predicate for public rows, e.g. "is_published = 1"
	Order      []Order  // default ORDER BY

	Scan   func(Scanner) (T, error) // reads Columns in order
	Values func(T) []any            // returns Columns in order
	Key    func(T) string
}

// Records is the typed CRUD surface every content store exposes.
type Records[T any] interface {
	List(ctx context.Context, opts ListOptions) ([]T, error)
	Count(ctx context.Context, opts ListOptions) (int, error)
	Get(ctx context.Context, key string) (T, error)
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, key string, rec T) (T, error)
	Delete(ctx context.Context, key string) error
}

// Gateway implements Records over a Table.
type Gateway[T any] struct {
	db SQLDB
	t  Table[T]
}

// NewGateway binds a table description to a database.
// PRE: t.Columns is non-empty; t.Scan and t.Values agree with t.Columns
func NewGateway[T any](db SQLDB, t Table[T]) *Gateway[T] {
	return &Gateway[T]{db: db, t: t}
}

// Table returns the table description.
func (g *Gateway[T]) Table() Table[T] { return g.t }

func (g *Gateway[T]) selectList() string {
	return strings.Join(g.t.Columns, ", ")
}

func (g *Gateway[T]) hasColumn(col string) bool {
	for _, c := range g.t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// where builds the WHERE clause and its arguments for opts.
func (g *Gateway[T]) where(opts ListOptions) (string, []any, error) {
	var conds []string
	var args []any
	if opts.PublishedOnly && g.t.Published != "" {
		conds = append(conds, g.t.Published)
	}
	for _, f := range opts.Filters {
		if !g.hasColumn(f.Column) {
			return "", nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, g.t.Name, f.Column)
		}
		conds = append(conds, f.Column+" = ?")
		args = append(args, f.Value)
	}
	if len(conds) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

func (g *Gateway[T]) orderBy(orders []Order) (string, error) {
	if len(orders) == 0 {
		orders = g.t.Order
	}
	if len(orders) == 0 {
		return "", nil
	}
	terms := make([]string, 0, len(orders))
	for _, o := range orders {
		if !g.hasColumn(o.Column) {
			return "", fmt.Errorf("%w: %s.%s", ErrUnknownColumn, g.t.Name, o.Column)
		}
		dir := " ASC"
		if o.Desc {
			dir = " DESC"
		}
		terms = append(terms, o.Column+dir)
	}
	return " ORDER BY " + strings.Join(terms, ", "), nil
}

// List returns the records matching opts in order.
// POST: Returns an empty slice, not an error, when nothing matches
func (g *Gateway[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	where, args, err := g.where(opts)
	if err != nil {
		return nil, err
	}
	order, err := g.orderBy(opts.OrderBy)
	if err != nil {
		return nil, err
	}
	q := "SELECT " + g.selectList() + " FROM " + g.t.Name + where + order
	if opts.Limit > 0 {
		q += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Offset)
	}
	rows, err := g.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", g.t.Name, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		rec, err := g.t.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", g.t.Name, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Count returns how many records match opts. Limit and order are ignored.
func (g *Gateway[T]) Count(ctx context.Context, opts ListOptions) (int, error) {
	where, args, err := g.where(opts)
	if err != nil {
		return 0, err
	}
	var n int
	if err := g.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+g.t.Name+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", g.t.Name, err)
	}
	return n, nil
}

// Get returns the record with primary key key.
// POST: Returns ErrNotFound when no row has that key
func (g *Gateway[T]) Get(ctx context.Context, key string) (T, error) {
	row := g.db.QueryRowContext(ctx,
		"SELECT "+g.selectList()+" FROM "+g.t.Name+" WHERE "+g.t.Columns[0]+" = ?", key)
	return g.scanOne(row)
}

// GetBySlug returns the record with the given slug. With publishedOnly, an
// unpublished record is reported as not found.
func (g *Gateway[T]) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (T, error) {
	var zero T
	if g.t.SlugColumn == "" {
		return zero, fmt.Errorf("%s: %w", g.t.Name, ErrNoSlug)
	}
	q := "SELECT " + g.selectList() + " FROM " + g.t.Name + " WHERE " + g.t.SlugColumn + " = ?"
	if publishedOnly && g.t.Published != "" {
		q += " AND " + g.t.Published
	}
	return g.scanOne(g.db.QueryRowContext(ctx, q, slug))
}

// Create inserts rec and returns it as stored.
// PRE: Key(rec) is non-empty; rec has been validated
// POST: Returns ErrDuplicate on a uniqueness violation
func (g *Gateway[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	key := g.t.Key(rec)
	if key == "" {
		return zero, ErrEmptyKey
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(g.t.Columns)), ", ")
	q := "INSERT INTO " + g.t.Name + " (" + g.selectList() + ") VALUES (" + placeholders + ")"
	if _, err := g.db.ExecContext(ctx, q, g.t.Values(rec)...); err != nil {
		return zero, g.wrapWriteErr("create", err)
	}
	return g.Get(ctx, key)
}

// Update overwrites every column of the record with key and returns it as
// stored. The key column itself is never changed.
// POST: Returns ErrNotFound when no row has that key
func (g *Gateway[T]) Update(ctx context.Context, key string, rec T) (T, error) {
	var zero T
	if key == "" {
		return zero, ErrEmptyKey
	}
	sets := make([]string, 0, len(g.t.Columns)-1)
	for _, c := range g.t.Columns[1:] {
		sets = append(sets, c+" = ?")
	}
	args := g.t.Values(rec)[1:]
	args = append(args, key)
	q := "UPDATE " + g.t.Name + " SET " + strings.Join(sets, ", ") + " WHERE " + g.t.Columns[0] + " = ?"
	res, err := g.db.ExecContext(ctx, q, args...)
	if err != nil {
		return zero, g.wrapWriteErr("update", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return zero, ErrNotFound
	}
	return g.Get(ctx, key)
}

// Delete removes the record with key.
// POST: Returns ErrNotFound when no row has that key
func (g *Gateway[T]) Delete(ctx context.Context, key string) error {
	res, err := g.db.ExecContext(ctx, "DELETE FROM "+g.t.Name+" WHERE "+g.t.Columns[0]+" = ?", key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", g.t.Name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *Gateway[T]) scanOne(row *sql.Row) (T, error) {
	rec, err := g.t.Scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, ErrNotFound
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("scan %s: %w", g.t.Name, err)
	}
	return rec, nil
}

func (g *Gateway[T]) wrapWriteErr(op string, err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%s %s: %w", op, g.t.Name, ErrDuplicate)
	}
	return fmt.Errorf("%s %s: %w", op, g.t.Name, err)
}

// Compile-time check that *Gateway satisfies Records.
var _ Records[struct{}] = (*Gateway[struct{}])(nil)
