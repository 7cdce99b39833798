package enums

import "fmt"

// Role represents an access level within a society.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleResident     Role = "resident"
	RoleSecurity     Role = "security"
	RoleReceptionist Role = "receptionist"
	RoleAccountant   Role = "accountant"
	RoleSuperAdmin   Role = "superadmin"
)

var validRoles = []Role{
	RoleAdmin,
	RoleResident,
	RoleSecurity,
	RoleReceptionist,
	RoleAccountant,
	RoleSuperAdmin,
}

// roleHomePaths maps each role to its dashboard home. Kept as a single
// lookup table so path dispatch never relies on ad-hoc string building.
var roleHomePaths = map[Role]string{
	RoleAdmin:        "/admin",
	RoleResident:     "/resident",
	RoleSecurity:     "/security",
	RoleReceptionist: "/receptionist",
	RoleAccountant:   "/accountant",
	RoleSuperAdmin:   "/superadmin",
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// HomePath returns the dashboard path owned by the role.
func (r Role) HomePath() string {
	if path, ok := roleHomePaths[r]; ok {
		return path
	}
	return "/login"
}

// Roles returns every known role in declaration order.
func Roles() []Role {
	roles := make([]Role, len(validRoles))
	copy(roles, validRoles)
	return roles
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
