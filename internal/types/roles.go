package types

import "fmt"

// Role is the closed set of authorization roles. There is no hierarchy:
// every check is an exhaustive match over these values.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleTourist      Role = "TOURIST"
	RoleBusinessUser Role = "BUSINESS_USER"
	RoleStudent      Role = "STUDENT"
	RoleJobApplicant Role = "JOB_APPLICANT"
)

// DefaultRole is assigned when a registration carries no role.
const DefaultRole = RoleTourist

// ParseRole maps a request-supplied string onto the enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTourist, RoleBusinessUser, RoleStudent, RoleJobApplicant:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string { return string(r) }

// IsPrivileged reports whether the role grants administrative access.
func (r Role) IsPrivileged() bool { return r == RoleAdmin }
