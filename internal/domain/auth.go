package domain

// Role is the privilege level carried in session tokens. New accounts always
// start as USER; nothing in this service elevates a role implicitly.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)
