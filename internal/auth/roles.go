package auth

// Role represents a platform account role.
type Role string

const (
	RoleBrand      Role = "brand"
	RoleInfluencer Role = "influencer"
	RoleAdmin      Role = "admin"
)

// NormalizeRole validates and normalizes a role string.
func NormalizeRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleBrand, RoleInfluencer, RoleAdmin:
		return Role(value), true
	default:
		return "", false
	}
}

// Satisfies reports whether role meets required. Admin satisfies every requirement and an
// empty requirement accepts any authenticated role.
func Satisfies(role, required Role) bool {
	if role == "" {
		return false
	}
	if required == "" || role == RoleAdmin {
		return true
	}
	return role == required
}
