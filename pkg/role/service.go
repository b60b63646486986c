package role

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/edustack/academy-idm/pkg/errors"
)

var (
	ErrEmptyRoleName = stderrors.New("role name cannot be empty")
)

// RoleRepository defines the interface for role storage
type RoleRepository interface {
	FindRoles(ctx context.Context) ([]Role, error)
	GetRoleById(ctx context.Context, id string) (Role, error)
	GetRoleByName(ctx context.Context, name string) (Role, error)
	CreateRole(ctx context.Context, role Role) (string, error)
}

// RoleService provides methods for role management and resolution
type RoleService struct {
	repo RoleRepository
}

func NewRoleService(repo RoleRepository) *RoleService {
	return &RoleService{
		repo: repo,
	}
}

// FindRoles returns all roles
func (s *RoleService) FindRoles(ctx context.Context) ([]Role, error) {
	return s.repo.FindRoles(ctx)
}

// GetRole retrieves a role by ID
func (s *RoleService) GetRole(ctx context.Context, id string) (Role, error) {
	return s.repo.GetRoleById(ctx, id)
}

// GetRoleByName retrieves a role by name
func (s *RoleService) GetRoleByName(ctx context.Context, name string) (Role, error) {
	return s.repo.GetRoleByName(ctx, name)
}

// Resolve retrieves a role by identifier, trying the ID first and falling
// back to the name. Fails with ROLE_NOT_FOUND when neither matches.
func (s *RoleService) Resolve(ctx context.Context, identifier string) (Role, error) {
	role, err := s.repo.GetRoleById(ctx, identifier)
	if err == nil {
		return role, nil
	}
	if !errors.IsCode(err, errors.ErrCodeRoleNotFound) {
		return Role{}, err
	}
	return s.repo.GetRoleByName(ctx, identifier)
}

// CreateRole adds a new role
func (s *RoleService) CreateRole(ctx context.Context, name, description string) (string, error) {
	if name == "" {
		return "", ErrEmptyRoleName
	}
	role := Role{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
	}
	return s.repo.CreateRole(ctx, role)
}

// EnsureBuiltinRoles creates the fixed role kinds that do not exist yet.
// Safe to call on every startup.
func (s *RoleService) EnsureBuiltinRoles(ctx context.Context) error {
	for _, kind := range Kinds() {
		_, err := s.repo.GetRoleByName(ctx, kind.Name)
		if err == nil {
			continue
		}
		if !errors.IsCode(err, errors.ErrCodeRoleNotFound) {
			return err
		}
		id, err := s.CreateRole(ctx, kind.Name, "")
		if err != nil {
			return err
		}
		slog.Info("Created builtin role", "name", kind.Name, "id", id)
	}
	return nil
}
