package models

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID           ID        `json:"id" db:"id"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	Phone        *string   `json:"phone" db:"phone"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// UserProfile is a user with its optional planner and vendor extensions.
type UserProfile struct {
	*User
	Planner *Planner `json:"planner"`
	Vendor  *Vendor  `json:"vendor"`
}

// UserPatch holds the columns an update writes. Nil fields are left untouched.
type UserPatch struct {
	FirstName    *string
	LastName     *string
	Phone        *string
	PasswordHash *string
}

func (p UserPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Phone == nil && p.PasswordHash == nil
}
