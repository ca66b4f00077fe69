package domain

import "time"

// Identity is what a verified session token yields.
type Identity struct {
	AccountID string
	Role      Role
	ExpiresAt time.Time
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
