package entity

// Role identifies the active viewer of the application.
type Role string

const (
	RoleNone     Role = "none"
	RoleReporter Role = "reporter"
	RoleReviewer Role = "reviewer"
)

var validRoles = map[Role]bool{
	RoleNone:     true,
	RoleReporter: true,
	RoleReviewer: true,
}

// IsValid returns true if the role is a recognized value.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Session is the process-wide viewer state. It is never persisted: a restart
// resets it to RoleNone with both flags cleared.
type Session struct {
	Role    Role `json:"role"`
	Busy    bool `json:"busy"`
	Offline bool `json:"offline"`
}
