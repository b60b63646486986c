package role

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edustack/academy-idm/pkg/errors"
)

func TestParseKindID(t *testing.T) {
	t.Run("ExactMatch", func(t *testing.T) {
		kind, err := ParseKindID("STUDENT")
		assert.NoError(t, err)
		assert.Equal(t, Student, kind)
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		kind, err := ParseKindID("student")
		assert.NoError(t, err)
		assert.Equal(t, Student, kind)

		kind, err = ParseKindID("Super_Admin")
		assert.NoError(t, err)
		assert.Equal(t, SuperAdmin, kind)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := ParseKindID("unknown")
		assert.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeRoleNotFound))
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseKindID("")
		assert.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeRoleNotFound))
	})
}

func TestParseKindName(t *testing.T) {
	kind, err := ParseKindName("teacher")
	assert.NoError(t, err)
	assert.Equal(t, Teacher, kind)

	_, err = ParseKindName("principal")
	assert.True(t, errors.IsCode(err, errors.ErrCodeRoleNotFound))
}

func TestHasMinimumLevel(t *testing.T) {
	assert.True(t, Admin.HasMinimumLevel(Teacher))
	assert.False(t, Student.HasMinimumLevel(Admin))
	assert.True(t, SuperAdmin.HasMinimumLevel(Admin))
	assert.False(t, Teacher.HasMinimumLevel(SuperAdmin))

	// Every kind satisfies its own level
	for _, k := range Kinds() {
		assert.True(t, k.HasMinimumLevel(k), "kind %s should satisfy itself", k)
	}
}

func TestKindLevelsStrictlyIncreasing(t *testing.T) {
	kinds := Kinds()
	for i := 1; i < len(kinds); i++ {
		assert.Greater(t, kinds[i].Level, kinds[i-1].Level)
	}
}
