package domain

import "time"

// Role classifies an account's authorization level.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleAgent    Role = "agent"
	RoleReferrer Role = "referrer"
)

// User represents a back-office account. Passwords are stored and compared
// in the clear; the access gate strips them before a user leaves the
// repository layer.
type User struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	Username       string    `json:"username" bson:"username"`
	Password       string    `json:"password,omitempty" bson:"password,omitempty"`
	Role           Role      `json:"role" bson:"role"`
	Name           string    `json:"name" bson:"name"`
	CommissionRate *float64  `json:"commission_rate,omitempty" bson:"commissionRate,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updatedAt"`
}

// Sanitized returns a copy safe to hand outside the gate: the password
// field is stripped.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clean := *u
	clean.Password = ""
	return &clean
}

// IsAdmin reports whether the account holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// HasCommission reports whether closing a deal credits this account.
// Only agents carry a meaningful rate.
func (u *User) HasCommission() bool {
	return u != nil && u.CommissionRate != nil
}
