package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"flotenn/internal/domain/account"
)

const goodPassword = "correct-horse-battery"

func TestExecuteLogin(t *testing.T) {
	store := newMockAccountStore()
	store.seed("u1", "owner@flotenn.in", goodPassword, account.RoleAdmin)
	deps := LoginDeps{AccountStore: store, Now: nowFn}

	tests := []struct {
		name    string
		input   LoginInput
		wantErr error
	}{
		{"success", LoginInput{Email: "owner@flotenn.in", Password: goodPassword}, nil},
		{"email is case insensitive", LoginInput{Email: "  Owner@Flotenn.IN ", Password: goodPassword}, nil},
		{"wrong password", LoginInput{Email: "owner@flotenn.in", Password: "nope-nope-nope"}, ErrInvalidCredentials},
		{"unknown email", LoginInput{Email: "ghost@flotenn.in", Password: goodPassword}, ErrInvalidCredentials},
		{"empty fields", LoginInput{}, ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct, err := ExecuteLogin(context.Background(), tt.input, deps)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && acct.ID != "u1" {
				t.Errorf("account ID = %q", acct.ID)
			}
		})
	}
}

func TestExecuteLogin_LockoutAfterFiveFailures(t *testing.T) {
	store := newMockAccountStore()
	store.seed("u1", "owner@flotenn.in", goodPassword, account.RoleEditor)
	now := fixedNow
	deps := LoginDeps{AccountStore: store, Now: func() time.Time { return now }}
	ctx := context.Background()
	bad := LoginInput{Email: "owner@flotenn.in", Password: "wrong-password-1"}

	for i := 1; i < account.MaxFailedLogins; i++ {
		if _, err := ExecuteLogin(ctx, bad, deps); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: err = %v", i, err)
		}
	}
	if _, err := ExecuteLogin(ctx, bad, deps); !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("fifth failure: err = %v, want ErrAccountLocked", err)
	}

	good := LoginInput{Email: "owner@flotenn.in", Password: goodPassword}
	if _, err := ExecuteLogin(ctx, good, deps); !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("locked account accepted the right password: %v", err)
	}

	now = now.Add(account.LockoutDuration + time.Second)
	if _, err := ExecuteLogin(ctx, good, deps); err != nil {
		t.Fatalf("after lockout window: %v", err)
	}
	if got := store.items["u1"]; got.FailedLogins != 0 || !got.LockedUntil.IsZero() {
		t.Errorf("lockout not cleared: failed=%d locked_until=%v", got.FailedLogins, got.LockedUntil)
	}
}
