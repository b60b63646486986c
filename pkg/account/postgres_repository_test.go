package account

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/edustack/academy-idm/pkg/errors"
	"github.com/edustack/academy-idm/pkg/role"
)

func setupTestDatabase(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithInitScripts(filepath.Join("../../migrations", "idm_db.sql")),
		postgres.WithDatabase("idm_db"),
		postgres.WithUsername("idm"),
		postgres.WithPassword("pwd"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	require.NoError(t, err)

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	poolConfig, err := pgxpool.ParseConfig(connString)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

func TestPostgresAccountRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	pool, cleanup := setupTestDatabase(t)
	defer cleanup()

	roleRepo := role.NewPostgresRoleRepository(pool)
	roleService := role.NewRoleService(roleRepo)
	require.NoError(t, roleService.EnsureBuiltinRoles(ctx))

	student, err := roleService.GetRoleByName(ctx, "STUDENT")
	require.NoError(t, err)

	repo := NewPostgresAccountRepository(pool)

	account := Account{
		ID:           "123456",
		Username:     "alice",
		Email:        "alice@campus.edu",
		Name:         "Alice",
		Surname:      "Meyer",
		PasswordHash: "$argon2id$v=19$m=1024,t=2,p=1$c2FsdA$aGFzaA",
		CreatedAt:    time.Now().UTC(),
		Role:         student,
	}

	t.Run("CreateAndGet", func(t *testing.T) {
		require.NoError(t, repo.CreateAccount(ctx, account))

		got, err := repo.GetAccount(ctx, "123456")
		require.NoError(t, err)
		assert.Equal(t, account.Username, got.Username)
		assert.Equal(t, account.PasswordHash, got.PasswordHash)
		assert.Equal(t, "STUDENT", got.Role.Name, "role is populated on read")
		assert.Nil(t, got.LastLogin)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := repo.GetAccount(ctx, "999999")
		assert.True(t, errors.IsCode(err, errors.ErrCodeAccountNotFound))
	})

	t.Run("Existence", func(t *testing.T) {
		exists, err := repo.ExistsByID(ctx, "123456")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "nobody@campus.edu")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("IDConflict", func(t *testing.T) {
		dup := account
		dup.Username = "bob"
		dup.Email = "bob@campus.edu"
		err := repo.CreateAccount(ctx, dup)
		assert.ErrorIs(t, err, ErrIDConflict)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		dup := account
		dup.ID = "234567"
		dup.Email = "bob@campus.edu"
		err := repo.CreateAccount(ctx, dup)
		assert.True(t, errors.IsCode(err, errors.ErrCodeDuplicateUsername))
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		dup := account
		dup.ID = "234567"
		dup.Username = "bob"
		err := repo.CreateAccount(ctx, dup)
		assert.True(t, errors.IsCode(err, errors.ErrCodeDuplicateEmail))
	})

	t.Run("UniquenessIgnoresCase", func(t *testing.T) {
		exists, err := repo.ExistsByUsername(ctx, "ALICE")
		require.NoError(t, err)
		assert.True(t, exists, "username existence check is case-insensitive")

		exists, err = repo.ExistsByEmail(ctx, "Alice@Campus.edu")
		require.NoError(t, err)
		assert.True(t, exists, "email existence check is case-insensitive")

		dup := account
		dup.ID = "234567"
		dup.Username = "Alice"
		dup.Email = "carol@campus.edu"
		err = repo.CreateAccount(ctx, dup)
		assert.True(t, errors.IsCode(err, errors.ErrCodeDuplicateUsername),
			"case-variant username hits the lower() unique index")

		dup.Username = "carol"
		dup.Email = "ALICE@campus.edu"
		err = repo.CreateAccount(ctx, dup)
		assert.True(t, errors.IsCode(err, errors.ErrCodeDuplicateEmail),
			"case-variant email hits the lower() unique index")

		got, err := repo.GetAccountByUsername(ctx, "ALICE")
		require.NoError(t, err)
		assert.Equal(t, "123456", got.ID, "lookup resolves the single canonical row")
	})

	t.Run("UpdatePersistsLastLogin", func(t *testing.T) {
		got, err := repo.GetAccount(ctx, "123456")
		require.NoError(t, err)

		now := time.Now().UTC().Truncate(time.Microsecond)
		got.LastLogin = &now
		require.NoError(t, repo.UpdateAccount(ctx, got))

		reloaded, err := repo.GetAccount(ctx, "123456")
		require.NoError(t, err)
		require.NotNil(t, reloaded.LastLogin)
		assert.WithinDuration(t, now, *reloaded.LastLogin, time.Second)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		missing := account
		missing.ID = "888888"
		err := repo.UpdateAccount(ctx, missing)
		assert.True(t, errors.IsCode(err, errors.ErrCodeAccountNotFound))
	})
}
