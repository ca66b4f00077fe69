package domain

import "time"

// Role distinguishes shoppers from store operators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account is a registered identity. Password holds the stored credential
// exactly as the configured credential policy produced it.
type Account struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Role      Role
	CreatedAt time.Time
}
