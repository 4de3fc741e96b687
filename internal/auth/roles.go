package auth

// Role grades staff access to stored quotes.
type Role string

const (
	// RoleAgent answers customer follow-ups: read-only quote access.
	RoleAgent Role = "agent"
	// RoleManager runs the back office: everything but exports and company setup.
	RoleManager Role = "manager"
	// RoleAdmin owns the tenant.
	RoleAdmin Role = "admin"
)

// ParseRole validates a role string from a token claim.
func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleAgent, RoleManager, RoleAdmin:
		return Role(value), true
	default:
		return "", false
	}
}

// Allows reports whether the role grants at least the required level.
func (r Role) Allows(required Role) bool {
	return r.rank() >= required.rank()
}

func (r Role) rank() int {
	switch r {
	case RoleAgent:
		return 1
	case RoleManager:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}
