package models

// Roles recognized by the authorization guards.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Session is the binary "authenticated: yes/no" result the core consumes
// from the session provider. The provider's own machinery (credential
// storage, token issuance, multi-factor) is an external collaborator.
type Session struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the session carries the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
