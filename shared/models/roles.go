package models

import "slices"

// Role tags stored on users and embedded into session tokens.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultRoles returns the role set assigned to newly registered users.
func DefaultRoles() []string {
	return []string{RoleUser}
}

// NormalizeRoles returns the roles as an ordered set: first occurrence wins,
// empty tags are dropped. A nil or empty input yields DefaultRoles.
func NormalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		if role == "" || slices.Contains(out, role) {
			continue
		}
		out = append(out, role)
	}
	if len(out) == 0 {
		return DefaultRoles()
	}
	return out
}

// HasRole reports whether targetRole is present in userRoles.
func HasRole(userRoles []string, targetRole string) bool {
	return slices.Contains(userRoles, targetRole)
}
