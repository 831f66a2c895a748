package models

// Role determines the visible sections and the permitted actions.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleDoctor      Role = "doctor"
	RoleTechnician  Role = "technician"
	RoleRadiologist Role = "radiologist"
	RolePatient     Role = "patient"
)

// Roles lists every role in sidebar order.
var Roles = []Role{RoleAdmin, RoleDoctor, RoleTechnician, RoleRadiologist, RolePatient}

func ValidRole(r Role) bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Session is the authenticated identity for the lifetime of the program.
// Either identity and role are both set or the session does not exist at
// all. UserID is the backend's opaque id for the account, used in
// role-scoped paths such as /doctor/cases/:doctorId; it falls back to the
// identity when the auth payload does not carry one.
type Session struct {
	Identity string
	UserID   string
	Role     Role
}
