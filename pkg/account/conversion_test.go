package account

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edustack/academy-idm/pkg/role"
)

func sampleAccount() Account {
	lastLogin := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	return Account{
		ID:           "123456",
		Username:     "alice",
		Email:        "alice@campus.edu",
		Name:         "Alice",
		Surname:      "Meyer",
		PasswordHash: "$argon2id$v=19$m=1024,t=2,p=1$c2FsdA$aGFzaA",
		CreatedAt:    time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
		LastLogin:    &lastLogin,
		Role:         role.Role{ID: "r-1", Name: "STUDENT"},
	}
}

func TestToDTO(t *testing.T) {
	t.Run("NilMapsToNil", func(t *testing.T) {
		assert.Nil(t, ToDTO(nil))
		assert.Nil(t, ToProfileDTO(nil))
	})

	t.Run("FullProjection", func(t *testing.T) {
		account := sampleAccount()
		dto := ToDTO(&account)
		require.NotNil(t, dto)
		assert.Equal(t, account.ID, dto.ID)
		assert.Equal(t, account.Username, dto.Username)
		require.NotNil(t, dto.Role)
		assert.Equal(t, "STUDENT", dto.Role.Name)
	})

	t.Run("NeverSerializesHash", func(t *testing.T) {
		account := sampleAccount()

		full, err := json.Marshal(ToDTO(&account))
		require.NoError(t, err)
		assert.NotContains(t, string(full), "argon2id")
		assert.NotContains(t, string(full), "password")

		profile, err := json.Marshal(ToProfileDTO(&account))
		require.NoError(t, err)
		assert.NotContains(t, string(profile), "argon2id")
		assert.NotContains(t, string(profile), "password")
	})

	t.Run("ProfileCarriesRoleNameOnly", func(t *testing.T) {
		account := sampleAccount()
		dto := ToProfileDTO(&account)
		require.NotNil(t, dto)
		assert.Equal(t, "STUDENT", dto.Role)
		assert.Equal(t, account.Surname, dto.Surname)
		assert.Equal(t, account.LastLogin, dto.LastLogin)
	})
}

func TestApplyProfileUpdate(t *testing.T) {
	t.Run("BlankFieldsLeftUntouched", func(t *testing.T) {
		account := sampleAccount()
		ApplyProfileUpdate(&account, UpdateProfileParams{
			Username: "",
			Email:    "new@campus.edu",
		})
		assert.Equal(t, "alice", account.Username)
		assert.Equal(t, "new@campus.edu", account.Email)
		assert.Equal(t, "Alice", account.Name)
		assert.Equal(t, "Meyer", account.Surname)
	})

	t.Run("WhitespaceCountsAsBlank", func(t *testing.T) {
		account := sampleAccount()
		ApplyProfileUpdate(&account, UpdateProfileParams{
			Username: "   ",
			Name:     "\t",
		})
		assert.Equal(t, "alice", account.Username)
		assert.Equal(t, "Alice", account.Name)
	})

	t.Run("AllFieldsPresent", func(t *testing.T) {
		account := sampleAccount()
		ApplyProfileUpdate(&account, UpdateProfileParams{
			Username: "alice2",
			Email:    "alice2@campus.edu",
			Name:     "Alicia",
			Surname:  "Meier",
		})
		assert.Equal(t, "alice2", account.Username)
		assert.Equal(t, "alice2@campus.edu", account.Email)
		assert.Equal(t, "Alicia", account.Name)
		assert.Equal(t, "Meier", account.Surname)
	})

	t.Run("TrimmedValueIsStored", func(t *testing.T) {
		account := sampleAccount()
		ApplyProfileUpdate(&account, UpdateProfileParams{Username: "  bob  "})
		assert.Equal(t, "bob", account.Username)
	})
}

func TestAccountEqual(t *testing.T) {
	a := sampleAccount()
	b := sampleAccount()
	b.Username = "completely-different"
	assert.True(t, a.Equal(b), "equality is identity, not structure")

	c := sampleAccount()
	c.ID = "654321"
	assert.False(t, a.Equal(c))

	assert.False(t, Account{}.Equal(Account{}), "unsaved accounts are never equal")
}
