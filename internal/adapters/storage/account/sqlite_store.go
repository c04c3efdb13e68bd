package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/account"
)

var columns = []string{"id", "name", "email", "password_hash", "role", "failed_logins", "locked_until", "created_at"}

var table = storage.Table[domain.Account]{
	Name:    "users",
	Columns: columns,
	Order:   []storage.Order{storage.Asc("created_at")},
	Scan:    scanAccount,
	Values: func(a domain.Account) []any {
		return []any{
			a.ID, a.Name, strings.ToLower(strings.TrimSpace(a.Email)), a.PasswordHash, string(a.Role),
			a.FailedLogins, storage.NullableTime(a.LockedUntil), storage.FormatTime(a.CreatedAt),
		}
	},
	Key: func(a domain.Account) string { return a.ID },
}

func scanAccount(s storage.Scanner) (domain.Account, error) {
	var a domain.Account
	var role, createdAt string
	var lockedUntil sql.NullString
	err := s.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &role, &a.FailedLogins, &lockedUntil, &createdAt)
	a.Role = domain.Role(role)
	a.LockedUntil = storage.ParseNullTime(lockedUntil)
	a.CreatedAt = storage.ParseTime(createdAt)
	return a, err
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	*storage.Gateway[domain.Account]
	db storage.SQLDB
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates an account store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{Gateway: storage.NewGateway(db, table), db: db}
}

// GetByEmail retrieves an account by email.
// PRE: email is non-empty
// POST: Returns the entity or storage.ErrNotFound
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+strings.Join(columns, ", ")+" FROM users WHERE email = ?",
		strings.ToLower(strings.TrimSpace(email)))
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("scan users: %w", err)
	}
	return a, nil
}

// SaveResetToken inserts or replaces a reset token.
func (s *SQLiteStore) SaveResetToken(ctx context.Context, t domain.ResetToken) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO password_resets (id, user_id, token, expires_at, used, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET used = excluded.used, expires_at = excluded.expires_at`,
		t.ID, t.AccountID, t.Token, storage.FormatTime(t.ExpiresAt), storage.BoolToInt(t.Used), storage.FormatTime(t.CreatedAt))
	if err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

// GetResetToken retrieves a reset token by its token value.
func (s *SQLiteStore) GetResetToken(ctx context.Context, token string) (domain.ResetToken, error) {
	var t domain.ResetToken
	var expiresAt, createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, token, expires_at, used, created_at FROM password_resets WHERE token = ?`, token).
		Scan(&t.ID, &t.AccountID, &t.Token, &expiresAt, &t.Used, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ResetToken{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.ResetToken{}, fmt.Errorf("scan password_resets: %w", err)
	}
	t.ExpiresAt = storage.ParseTime(expiresAt)
	t.CreatedAt = storage.ParseTime(createdAt)
	return t, nil
}

// InvalidateResetTokens marks every unused token for accountID as used.
func (s *SQLiteStore) InvalidateResetTokens(ctx context.Context, accountID string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE password_resets SET used = 1 WHERE user_id = ? AND used = 0`, accountID)
	if err != nil {
		return fmt.Errorf("invalidate reset tokens: %w", err)
	}
	return nil
}
