package domain

// Role enumerates the principal kinds known to the credential store.
type Role int

const (
	RoleAdmin   Role = 1
	RoleTeacher Role = 2
	RoleParent  Role = 3
	RoleStudent Role = 4
)

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	return r >= RoleAdmin && r <= RoleStudent
}

// ParseRole maps a role name onto its enum value.
func ParseRole(name string) (Role, bool) {
	switch name {
	case "admin":
		return RoleAdmin, true
	case "teacher":
		return RoleTeacher, true
	case "parent":
		return RoleParent, true
	case "student":
		return RoleStudent, true
	default:
		return 0, false
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleTeacher:
		return "teacher"
	case RoleParent:
		return "parent"
	case RoleStudent:
		return "student"
	default:
		return "unknown"
	}
}
