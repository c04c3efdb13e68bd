package account

import (
	"context"

	"flotenn/internal/adapters/storage"
	domain "flotenn/internal/domain/account"
)

// Store persists back-office accounts and their password reset tokens.
type Store interface {
	storage.Records[domain.Account]

	// GetByEmail looks an account up case-insensitively.
	// POST: Returns storage.ErrNotFound when no account has that email
	GetByEmail(ctx context.Context, email string) (domain.Account, error)

	// SaveResetToken inserts or replaces a reset token.
	// PRE: token.AccountID refers to an existing account
	SaveResetToken(ctx context.Context, token domain.ResetToken) error

	// GetResetToken returns the reset token with the given token value.
	// POST: Returns storage.ErrNotFound for an unknown token
	GetResetToken(ctx context.Context, token string) (domain.ResetToken, error)

	// InvalidateResetTokens marks every outstanding token for accountID used.
	InvalidateResetTokens(ctx context.Context, accountID string) error
}
