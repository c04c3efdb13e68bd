package account

// Role is a back-office permission level.
type Role string

// Roles from most to least privileged.
const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleEditor     Role = "editor"
	RoleViewer     Role = "viewer"
)

// ValidRoles contains all valid role values.
var ValidRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleEditor, RoleViewer}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Label is the human name of the role.
func (r Role) Label() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleAdmin:
		return "Admin"
	case RoleEditor:
		return "Editor"
	case RoleViewer:
		return "Viewer"
	default:
		return string(r)
	}
}

// CanWrite reports whether r may create, update or delete records.
func (r Role) CanWrite() bool {
	return r.Valid() && r != RoleViewer
}

// RoleSet is a set of roles. A nil or empty set admits every valid role.
type RoleSet map[Role]struct{}

// Roles builds a RoleSet.
func Roles(rs ...Role) RoleSet {
	set := make(RoleSet, len(rs))
	for _, r := range rs {
		set[r] = struct{}{}
	}
	return set
}

// Common role sets used by back-office sections.
var (
	Everyone = RoleSet(nil)
	Editors  = Roles(RoleSuperAdmin, RoleAdmin, RoleEditor)
	Admins   = Roles(RoleSuperAdmin, RoleAdmin)
)

// IsAuthorized reports whether role is admitted by required.
func IsAuthorized(role Role, required RoleSet) bool {
	if !role.Valid() {
		return false
	}
	if len(required) == 0 {
		return true
	}
	_, ok := required[role]
	return ok
}
