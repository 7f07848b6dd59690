package user

type Role string

const (
	RoleAdmin    Role = "admin"    // Full administrative access
	RoleHR       Role = "hr"       // Reviews leave, expenses and attendance, publishes notices
	RoleManager  Role = "manager"  // Reviews leave, expenses and attendance
	RoleEmployee Role = "employee" // Regular employee
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// IsAdministrative reports whether r may decide on other employees' requests.
func (r Role) IsAdministrative() bool {
	return r == RoleAdmin || r == RoleHR || r == RoleManager
}
