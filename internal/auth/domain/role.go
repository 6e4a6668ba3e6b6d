package domain

import "fmt"

// Role is the closed set of principal roles. Every principal has exactly
// one; there is no role hierarchy beyond what individual gates enforce.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// ParseRole validates a role string against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleAdmin, RoleSuperAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string { return string(r) }
