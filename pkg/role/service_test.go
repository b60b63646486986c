package role

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edustack/academy-idm/pkg/errors"
)

func TestRoleService_CreateRole(t *testing.T) {
	ctx := context.Background()
	service := NewRoleService(NewInMemoryRoleRepository())

	t.Run("Success", func(t *testing.T) {
		id, err := service.CreateRole(ctx, "ADMIN", "platform administrators")
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		role, err := service.GetRole(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "ADMIN", role.Name)
		assert.Equal(t, "platform administrators", role.Description)
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := service.CreateRole(ctx, "", "")
		assert.ErrorIs(t, err, ErrEmptyRoleName)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		_, err := service.CreateRole(ctx, "admin", "different case, same role")
		assert.True(t, errors.IsCode(err, errors.ErrCodeConflict))
	})
}

func TestRoleService_Resolve(t *testing.T) {
	ctx := context.Background()
	service := NewRoleService(NewInMemoryRoleRepository())

	id, err := service.CreateRole(ctx, "TEACHER", "")
	require.NoError(t, err)

	t.Run("ByID", func(t *testing.T) {
		role, err := service.Resolve(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "TEACHER", role.Name)
	})

	t.Run("ByName", func(t *testing.T) {
		role, err := service.Resolve(ctx, "teacher")
		require.NoError(t, err)
		assert.Equal(t, id, role.ID)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := service.Resolve(ctx, "gardener")
		assert.True(t, errors.IsCode(err, errors.ErrCodeRoleNotFound))
	})
}

func TestRoleService_EnsureBuiltinRoles(t *testing.T) {
	ctx := context.Background()
	service := NewRoleService(NewInMemoryRoleRepository())

	require.NoError(t, service.EnsureBuiltinRoles(ctx))

	roles, err := service.FindRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, len(Kinds()))

	for _, kind := range Kinds() {
		role, err := service.GetRoleByName(ctx, kind.Name)
		require.NoError(t, err)
		resolved, err := role.Kind()
		require.NoError(t, err)
		assert.Equal(t, kind.Level, resolved.Level)
	}

	// Idempotent on a second run
	require.NoError(t, service.EnsureBuiltinRoles(ctx))
	roles, err = service.FindRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, len(Kinds()))
}

func TestRoleDTOConversion(t *testing.T) {
	t.Run("NilMapsToNil", func(t *testing.T) {
		assert.Nil(t, ToDTO(nil))
		assert.Nil(t, FromDTO(nil))
	})

	t.Run("RoundTrip", func(t *testing.T) {
		role := &Role{ID: "r-1", Name: "STUDENT", Description: "enrolled students"}
		dto := ToDTO(role)
		require.NotNil(t, dto)
		assert.Equal(t, role.ID, dto.ID)
		assert.Equal(t, role.Name, dto.Name)
		assert.Equal(t, role.Description, dto.Description)

		back := FromDTO(dto)
		require.NotNil(t, back)
		assert.Equal(t, *role, *back)
	})
}
