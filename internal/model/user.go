package model

import "time"

// Role identifies the access level of a user.
type Role string

const (
	// RoleAdmin has full visibility and can manage users and expense types.
	RoleAdmin Role = "admin"
	// RoleManager has full visibility and can manage properties, income and expenses.
	RoleManager Role = "manager"
	// RoleOwner only sees properties in which they hold an ownership share,
	// and only their proportional slice of those properties' financials.
	RoleOwner Role = "owner"
)

// Privileged reports whether the role has unrestricted visibility
// across all properties.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleManager
}

// User represents a user row from the database.
type User struct {
	ID           string    `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Caller is the authenticated identity attached to a request by the
// session middleware. It carries only the fields the aggregators need.
type Caller struct {
	ID    string `json:"id"`
	Login string `json:"login"`
	Role  Role   `json:"role"`
}
