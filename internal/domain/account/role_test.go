package account_test

import (
	"testing"

	"flotenn/internal/domain/account"
)

func TestIsAuthorized(t *testing.T) {
	tests := []struct {
		role     account.Role
		required account.RoleSet
		want     bool
	}{
		{account.RoleViewer, account.Everyone, true},
		{account.RoleViewer, account.Editors, false},
		{account.RoleEditor, account.Editors, true},
		{account.RoleEditor, account.Admins, false},
		{account.RoleAdmin, account.Admins, true},
		{account.RoleSuperAdmin, account.Admins, true},
		{account.Role("coach"), account.Everyone, false},
		{account.Role(""), account.Roles(), false},
	}
	for _, tt := range tests {
		if got := account.IsAuthorized(tt.role, tt.required); got != tt.want {
			t.Errorf("IsAuthorized(%q, %v) = %v, want %v", tt.role, tt.required, got, tt.want)
		}
	}
}

func TestRole_CanWrite(t *testing.T) {
	for _, r := range []account.Role{account.RoleSuperAdmin, account.RoleAdmin, account.RoleEditor} {
		if !r.CanWrite() {
			t.Errorf("%s should be able to write", r)
		}
	}
	if account.RoleViewer.CanWrite() {
		t.Error("viewer must be read-only")
	}
}
