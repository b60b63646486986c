package account

import (
	"strings"

	"github.com/edustack/academy-idm/pkg/role"
)

// ToDTO converts an account to its full wire representation. Nil maps to
// nil. The password hash is omitted unconditionally.
func ToDTO(a *Account) *AccountDTO {
	if a == nil {
		return nil
	}
	return &AccountDTO{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Name:      a.Name,
		Surname:   a.Surname,
		CreatedAt: a.CreatedAt,
		LastLogin: a.LastLogin,
		Role:      role.ToDTO(&a.Role),
	}
}

// ToProfileDTO converts an account to its public profile representation.
// Nil maps to nil. Only the role's display name is carried, not the role.
func ToProfileDTO(a *Account) *ProfileDTO {
	if a == nil {
		return nil
	}
	return &ProfileDTO{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Name:      a.Name,
		Surname:   a.Surname,
		Role:      a.Role.Name,
		CreatedAt: a.CreatedAt,
		LastLogin: a.LastLogin,
	}
}

// ApplyProfileUpdate overwrites an account field only when the corresponding
// update field is non-blank after trimming. Partial requests never blank out
// existing data.
func ApplyProfileUpdate(a *Account, params UpdateProfileParams) {
	if v := strings.TrimSpace(params.Username); v != "" {
		a.Username = v
	}
	if v := strings.TrimSpace(params.Email); v != "" {
		a.Email = v
	}
	if v := strings.TrimSpace(params.Name); v != "" {
		a.Name = v
	}
	if v := strings.TrimSpace(params.Surname); v != "" {
		a.Surname = v
	}
}
