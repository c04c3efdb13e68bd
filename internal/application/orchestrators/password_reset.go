package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"flotenn/internal/adapters/storage"
	emailAdapter "flotenn/internal/adapters/email"
	"flotenn/internal/domain/account"
	"flotenn/internal/domain/audit"
)

// AccountStoreForReset defines the store interface needed by the password reset flow.
type AccountStoreForReset interface {
	Get(ctx context.Context, key string) (account.Account, error)
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Update(ctx context.Context, key string, a account.Account) (account.Account, error)
	SaveResetToken(ctx context.Context, token account.ResetToken) error
	GetResetToken(ctx context.Context, token string) (account.ResetToken, error)
	InvalidateResetTokens(ctx context.Context, accountID string) error
}

// PasswordResetDeps holds dependencies for the password reset orchestrators.
type PasswordResetDeps struct {
	AccountStore AccountStoreForReset
	Email        SendEmailDeps
	Activity     RecordActivityDeps
	BaseURL      string // e.g. https://flotenn.in
	GenerateID   func() string
	Now          func() time.Time
	// RevokeSessions signs the account out everywhere and returns how many
	// sessions were closed. Nil skips revocation.
	RevokeSessions func(accountID string) int
}

// ErrPasswordMismatch is returned when the confirmation does not match.
var ErrPasswordMismatch = errors.New("passwords do not match")

// ExecuteRequestPasswordReset emails a one-time reset link to the account
// with the given email. Unknown emails succeed silently.
// PRE: email is non-empty
// POST: At most one new token stored; earlier tokens for the account are invalidated
func ExecuteRequestPasswordReset(ctx context.Context, email string, deps PasswordResetDeps) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return account.ErrEmptyEmail
	}
	acct, err := deps.AccountStore.GetByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		slog.Info("auth_event", "event", "reset_requested_unknown", "email", email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}

	if err := deps.AccountStore.InvalidateResetTokens(ctx, acct.ID); err != nil {
		return fmt.Errorf("invalidate reset tokens: %w", err)
	}
	now := deps.Now()
	token := account.ResetToken{
		ID:        deps.GenerateID(),
		AccountID: acct.ID,
		Token:     deps.GenerateID(),
		ExpiresAt: now.Add(account.ResetTokenTTL),
		CreatedAt: now,
	}
	if err := deps.AccountStore.SaveResetToken(ctx, token); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	link := strings.TrimRight(deps.BaseURL, "/") + "/admin/reset-password?token=" + token.Token
	body, err := renderMail(resetMail, map[string]any{"Name": acct.Name, "Link": link})
	if err != nil {
		return err
	}
	if _, err := ExecuteSendEmail(ctx, emailAdapter.Message{
		To:      []string{acct.Email},
		Subject: "Reset your Flotenn admin password",
		HTML:    body,
	}, deps.Email); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	slog.Info("auth_event", "event", "reset_requested", "email", email)
	return nil
}

// CompleteResetInput carries the new password for a reset link.
type CompleteResetInput struct {
	Token    string
	Password string
	Confirm  string
}

// ExecuteCompletePasswordReset redeems a reset token and sets the new password.
// PRE: Token came from a reset link
// POST: Password changed, lockout cleared, tokens invalidated, sessions revoked
// INVARIANT: A token works once and only before it expires
func ExecuteCompletePasswordReset(ctx context.Context, input CompleteResetInput, deps PasswordResetDeps) error {
	if input.Password != input.Confirm {
		return ErrPasswordMismatch
	}
	tok, err := deps.AccountStore.GetResetToken(ctx, input.Token)
	if errors.Is(err, storage.ErrNotFound) {
		return account.ErrTokenInvalid
	}
	if err != nil {
		return fmt.Errorf("load reset token: %w", err)
	}
	if err := tok.Redeem(deps.Now()); err != nil {
		return err
	}

	acct, err := deps.AccountStore.Get(ctx, tok.AccountID)
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return err
	}
	acct.ResetFailedLogins()
	if _, err := deps.AccountStore.Update(ctx, acct.ID, acct); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if err := deps.AccountStore.InvalidateResetTokens(ctx, acct.ID); err != nil {
		return fmt.Errorf("invalidate reset tokens: %w", err)
	}

	revoked := 0
	if deps.RevokeSessions != nil {
		revoked = deps.RevokeSessions(acct.ID)
	}
	slog.Info("auth_event", "event", "password_reset", "email", acct.Email, "sessions_revoked", revoked)
	logActivity(ctx, RecordActivityInput{
		UserID: acct.ID, Action: audit.ActionPasswordSet, EntityType: "user", EntityID: acct.ID,
	}, deps.Activity)
	return nil
}
