package user

// Application roles. Stored as plain strings on the user entity.
const (
	RoleBarista = "barista"
	RoleBaker   = "baker"
	RoleAdmin   = "admin"
)

// AllRoles returns every known role.
func AllRoles() []string {
	return []string{RoleBarista, RoleBaker, RoleAdmin}
}

// IsRole reports whether the given string is a known role.
func IsRole(role string) bool {
	for _, r := range AllRoles() {
		if r == role {
			return true
		}
	}
	return false
}
