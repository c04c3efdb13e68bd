package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"flotenn/internal/adapters/storage"
	"flotenn/internal/domain/account"
	"flotenn/internal/domain/audit"
)

// AccountStoreForManage defines the store interface needed by the user
// management orchestrators.
type AccountStoreForManage interface {
	Get(ctx context.Context, key string) (account.Account, error)
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Create(ctx context.Context, a account.Account) (account.Account, error)
	Update(ctx context.Context, key string, a account.Account) (account.Account, error)
	Delete(ctx context.Context, key string) error
	Count(ctx context.Context, opts storage.ListOptions) (int, error)
}

// SaveAccountInput carries input for creating or editing a user.
type SaveAccountInput struct {
	ID       string // empty creates a new account
	Name     string
	Email    string
	Password string // blank on edit keeps the current password
	Role     account.Role
	ActorID  string
	// ActorRole is the role of the operator doing the change.
	ActorRole account.Role
}

// AccountDeps holds dependencies for the user management orchestrators.
type AccountDeps struct {
	AccountStore AccountStoreForManage
	Activity     RecordActivityDeps
	GenerateID   func() string
	Now          func() time.Time
}

var (
	ErrEmailAlreadyExists = errors.New("an account with this email already exists")
	ErrRoleNotAllowed     = errors.New("only a super admin can grant the super admin role")
	ErrDeleteSelf         = errors.New("you cannot delete your own account")
)

// ExecuteSaveAccount creates a user, or updates one when input.ID is set.
// PRE: Name, email and role provided; password >= 12 chars on create
// POST: Account stored with a bcrypt hash
// INVARIANT: Email is unique across accounts
func ExecuteSaveAccount(ctx context.Context, input SaveAccountInput, deps AccountDeps) (account.Account, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if input.Role == account.RoleSuperAdmin && input.ActorRole != "" && input.ActorRole != account.RoleSuperAdmin {
		return account.Account{}, ErrRoleNotAllowed
	}

	if existing, err := deps.AccountStore.GetByEmail(ctx, email); err == nil && existing.ID != input.ID {
		return account.Account{}, ErrEmailAlreadyExists
	} else if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return account.Account{}, fmt.Errorf("check email: %w", err)
	}

	if input.ID == "" {
		return createAccount(ctx, email, input, deps)
	}

	acct, err := deps.AccountStore.Get(ctx, input.ID)
	if err != nil {
		return account.Account{}, fmt.Errorf("load account: %w", err)
	}
	acct.Name = strings.TrimSpace(input.Name)
	acct.Email = email
	acct.Role = input.Role
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}
	if input.Password != "" {
		if err := acct.SetPassword(input.Password); err != nil {
			return account.Account{}, err
		}
	}
	saved, err := deps.AccountStore.Update(ctx, acct.ID, acct)
	if err != nil {
		return account.Account{}, fmt.Errorf("update account: %w", err)
	}

	slog.Info("auth_event", "event", "account_updated", "email", email, "role", input.Role, "password_changed", input.Password != "")
	logActivity(ctx, RecordActivityInput{
		UserID: input.ActorID, Action: audit.ActionUpdate,
		EntityType: "user", EntityID: saved.ID, Details: saved.Email,
	}, deps.Activity)
	return saved, nil
}

func createAccount(ctx context.Context, email string, input SaveAccountInput, deps AccountDeps) (account.Account, error) {
	acct := account.Account{
		ID:        deps.GenerateID(),
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		Role:      input.Role,
		CreatedAt: deps.Now(),
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return account.Account{}, err
	}
	saved, err := deps.AccountStore.Create(ctx, acct)
	if errors.Is(err, storage.ErrDuplicate) {
		return account.Account{}, ErrEmailAlreadyExists
	}
	if err != nil {
		return account.Account{}, fmt.Errorf("create account: %w", err)
	}

	slog.Info("auth_event", "event", "account_created", "email", email, "role", input.Role)
	logActivity(ctx, RecordActivityInput{
		UserID: input.ActorID, Action: audit.ActionCreate,
		EntityType: "user", EntityID: saved.ID, Details: saved.Email,
	}, deps.Activity)
	return saved, nil
}

// ExecuteDeleteAccount removes a user.
// PRE: id is non-empty
// POST: Account removed; its reset tokens go with it
func ExecuteDeleteAccount(ctx context.Context, id, actorID string, deps AccountDeps) error {
	if id == actorID {
		return ErrDeleteSelf
	}
	if err := deps.AccountStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	slog.Info("auth_event", "event", "account_deleted", "account_id", id)
	logActivity(ctx, RecordActivityInput{
		UserID: actorID, Action: audit.ActionDelete, EntityType: "user", EntityID: id,
	}, deps.Activity)
	return nil
}

// ExecuteSeedAdmin creates a super admin if no accounts exist.
// PRE: Database is migrated
// POST: Admin account created if count == 0
func ExecuteSeedAdmin(ctx context.Context, deps AccountDeps, email, password string) error {
	count, err := deps.AccountStore.Count(ctx, storage.ListOptions{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		return errors.New("no accounts exist and no admin password is configured")
	}

	if _, err := ExecuteSaveAccount(ctx, SaveAccountInput{
		Name:     "Administrator",
		Email:    email,
		Password: password,
		Role:     account.RoleSuperAdmin,
	}, deps); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	slog.Info("auth_event", "event", "admin_seeded", "email", email)
	return nil
}
