package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edustack/academy-idm/pkg/errors"
)

func TestArgon2Hasher(t *testing.T) {
	hasher := NewArgon2Hasher()

	t.Run("ValidPassword", func(t *testing.T) {
		password := "validPassword123"
		hashedPassword, err := hasher.Hash(password)
		require.NoError(t, err)
		assert.NotEmpty(t, hashedPassword)

		match, err := hasher.Verify(hashedPassword, password)
		assert.NoError(t, err)
		assert.True(t, match, "the password should match the hashed password")
	})

	t.Run("IncorrectPassword", func(t *testing.T) {
		hashedPassword, err := hasher.Hash("correctPassword")
		require.NoError(t, err)

		match, err := hasher.Verify(hashedPassword, "incorrectPassword")
		assert.NoError(t, err)
		assert.False(t, match, "incorrect password should not match")
	})

	t.Run("SelfDescribingFormat", func(t *testing.T) {
		hashedPassword, err := hasher.Hash("secret")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hashedPassword, "$argon2id$v=19$m=1024,t=2,p=1$"))
		assert.NotContains(t, hashedPassword, "secret")
	})

	t.Run("SaltRandomization", func(t *testing.T) {
		password := "samePlaintext"
		first, err := hasher.Hash(password)
		require.NoError(t, err)
		second, err := hasher.Hash(password)
		require.NoError(t, err)

		assert.NotEqual(t, first, second, "two hashes of the same plaintext should differ")

		match, err := hasher.Verify(first, password)
		assert.NoError(t, err)
		assert.True(t, match)
		match, err = hasher.Verify(second, password)
		assert.NoError(t, err)
		assert.True(t, match)
	})

	t.Run("CorruptedHash", func(t *testing.T) {
		match, err := hasher.Verify("invalidHash", "somePassword")
		assert.False(t, match)
		assert.True(t, errors.IsCode(err, errors.ErrCodeCorruptCredential))
	})

	t.Run("EmptyHash", func(t *testing.T) {
		match, err := hasher.Verify("", "somePassword")
		assert.False(t, match)
		assert.True(t, errors.IsCode(err, errors.ErrCodeCorruptCredential))
	})

	t.Run("EmptyDigest", func(t *testing.T) {
		// Decodes as six well-formed segments with a zero-length digest;
		// must come back as a corrupt-credential error, not a panic
		match, err := hasher.Verify("$argon2id$v=19$m=1024,t=2,p=1$c2FsdA$", "anything")
		assert.False(t, match)
		assert.True(t, errors.IsCode(err, errors.ErrCodeCorruptCredential))
	})

	t.Run("EmptySalt", func(t *testing.T) {
		match, err := hasher.Verify("$argon2id$v=19$m=1024,t=2,p=1$$aGFzaA", "anything")
		assert.False(t, match)
		assert.True(t, errors.IsCode(err, errors.ErrCodeCorruptCredential))
	})

	t.Run("WrongAlgorithm", func(t *testing.T) {
		match, err := hasher.Verify("$bcrypt$v=19$m=1024,t=2,p=1$c2FsdA$aGFzaA", "somePassword")
		assert.False(t, match)
		assert.True(t, errors.IsCode(err, errors.ErrCodeCorruptCredential))
	})

	t.Run("TamperedDigestStillComparable", func(t *testing.T) {
		hashedPassword, err := hasher.Hash("secret")
		require.NoError(t, err)

		// Flip the digest to another validly encoded value: parseable, but no match
		parts := strings.Split(hashedPassword, "$")
		parts[5] = strings.Repeat("A", len(parts[5]))
		match, err := hasher.Verify(strings.Join(parts, "$"), "secret")
		assert.NoError(t, err)
		assert.False(t, match)
	})
}
