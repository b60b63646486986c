package role

import (
	"context"
	"strings"
	"sync"

	"github.com/edustack/academy-idm/pkg/errors"
)

// InMemoryRoleRepository implements RoleRepository using in-memory storage
type InMemoryRoleRepository struct {
	mu    sync.RWMutex
	roles map[string]Role // roleID -> Role
}

// NewInMemoryRoleRepository creates a new in-memory role repository
func NewInMemoryRoleRepository() *InMemoryRoleRepository {
	return &InMemoryRoleRepository{
		roles: make(map[string]Role),
	}
}

// FindRoles returns all roles
func (r *InMemoryRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roles := make([]Role, 0, len(r.roles))
	for _, role := range r.roles {
		roles = append(roles, role)
	}
	return roles, nil
}

// GetRoleById retrieves a role by ID
func (r *InMemoryRoleRepository) GetRoleById(ctx context.Context, id string) (Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, ok := r.roles[id]
	if !ok {
		return Role{}, errors.RoleNotFound(id)
	}
	return role, nil
}

// GetRoleByName retrieves a role by name, case-insensitively
func (r *InMemoryRoleRepository) GetRoleByName(ctx context.Context, name string) (Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, role := range r.roles {
		if strings.EqualFold(role.Name, name) {
			return role, nil
		}
	}
	return Role{}, errors.RoleNotFound(name)
}

// CreateRole creates a new role. Role names are unique.
func (r *InMemoryRoleRepository) CreateRole(ctx context.Context, role Role) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.roles {
		if strings.EqualFold(existing.Name, role.Name) {
			return "", errors.Newf(errors.ErrCodeConflict, "role name already exists: %s", role.Name)
		}
	}
	r.roles[role.ID] = role
	return role.ID, nil
}
