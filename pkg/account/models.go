package account

import (
	"time"

	"github.com/edustack/academy-idm/pkg/role"
)

// Account represents a persisted user identity. PasswordHash never leaves
// this package through a DTO.
type Account struct {
	ID           string
	Username     string
	Email        string
	Name         string
	Surname      string
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    *time.Time
	Role         role.Role
}

// Equal reports identity equality: two accounts are the same iff their ids
// match. Structural differences are irrelevant.
func (a Account) Equal(other Account) bool {
	return a.ID != "" && a.ID == other.ID
}

// AccountDTO is the full wire representation of an account, including the
// nested role. It has no password hash field.
type AccountDTO struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Surname   string        `json:"surname"`
	CreatedAt time.Time     `json:"created_at"`
	LastLogin *time.Time    `json:"last_login,omitempty"`
	Role      *role.RoleDTO `json:"role"`
}

// ProfileDTO is the reduced public representation: identity fields and the
// role's display name only.
type ProfileDTO struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Surname   string     `json:"surname"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// CreateAccountParams contains parameters for creating a new account.
// RoleID is a role identifier resolved by the service; the id is always
// produced by the allocator, never caller-supplied.
type CreateAccountParams struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Password string `json:"password"`
	RoleID   string `json:"role_id"`
}

// UpdateProfileParams contains the partial profile update. Absent or blank
// fields leave the stored value untouched.
type UpdateProfileParams struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Surname  string `json:"surname,omitempty"`
}
