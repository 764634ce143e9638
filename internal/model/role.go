package model

// Role is the closed set of authorization roles. "support" appears only in a
// later revision of the route guards; it is part of the authoritative enum here
// so every dispatch site handles it.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
	RoleManagement Role = "management"
	RoleIT         Role = "it"
	RoleSupport    Role = "support"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleManagement, RoleIT, RoleSupport:
		return true
	}
	return false
}
