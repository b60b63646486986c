package role

import (
	"github.com/jinzhu/copier"
)

// Role represents a persisted role in the system
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Kind resolves the role's authorization kind from its name
func (r Role) Kind() (Kind, error) {
	return ParseKindName(r.Name)
}

// RoleDTO is the wire representation of a role
type RoleDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ToDTO converts a role to its wire representation. Nil maps to nil.
func ToDTO(r *Role) *RoleDTO {
	if r == nil {
		return nil
	}
	dto := &RoleDTO{}
	copier.Copy(dto, r)
	return dto
}

// FromDTO converts a wire representation back to a role. Nil maps to nil.
func FromDTO(dto *RoleDTO) *Role {
	if dto == nil {
		return nil
	}
	r := &Role{}
	copier.Copy(r, dto)
	return r
}

// CreateRoleParams contains parameters for creating a new role
type CreateRoleParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
