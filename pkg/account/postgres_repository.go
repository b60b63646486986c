package account

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/academy-idm/pkg/errors"
)

// Unique constraint and index names from migrations/idm_db.sql. Username
// and email uniqueness is case-insensitive, backed by lower() indexes.
const (
	constraintAccountsPkey     = "accounts_pkey"
	constraintAccountsUsername = "accounts_username_lower_key"
	constraintAccountsEmail    = "accounts_email_lower_key"
)

// PostgresAccountRepository implements AccountRepository using PostgreSQL.
// Reads join the role so returned accounts always carry a populated role.
type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

// NewPostgresAccountRepository creates a new PostgreSQL account repository
func NewPostgresAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{
		db: db,
	}
}

const accountColumns = `a.id, a.username, a.email, a.name, a.surname, a.password_hash,
	a.created_at, a.last_login, r.id, r.name, COALESCE(r.description, '')`

// GetAccount retrieves an account by id with its role joined
func (r *PostgresAccountRepository) GetAccount(ctx context.Context, id string) (Account, error) {
	var account Account
	err := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+`
		 FROM accounts a JOIN roles r ON r.id = a.role_id
		 WHERE a.id = $1`, id).
		Scan(&account.ID, &account.Username, &account.Email, &account.Name,
			&account.Surname, &account.PasswordHash, &account.CreatedAt,
			&account.LastLogin, &account.Role.ID, &account.Role.Name,
			&account.Role.Description)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return Account{}, errors.AccountNotFound(id)
		}
		return Account{}, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// GetAccountByUsername retrieves an account by username with its role joined
func (r *PostgresAccountRepository) GetAccountByUsername(ctx context.Context, username string) (Account, error) {
	var account Account
	err := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+`
		 FROM accounts a JOIN roles r ON r.id = a.role_id
		 WHERE lower(a.username) = lower($1)`, username).
		Scan(&account.ID, &account.Username, &account.Email, &account.Name,
			&account.Surname, &account.PasswordHash, &account.CreatedAt,
			&account.LastLogin, &account.Role.ID, &account.Role.Name,
			&account.Role.Description)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return Account{}, errors.AccountNotFound(username)
		}
		return Account{}, fmt.Errorf("failed to get account by username: %w", err)
	}
	return account, nil
}

// CreateAccount persists a new account. The id, username and email unique
// constraints are the authoritative uniqueness guards; violations map to the
// core's typed conflicts.
func (r *PostgresAccountRepository) CreateAccount(ctx context.Context, account Account) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO accounts (id, username, email, name, surname, password_hash, created_at, last_login, role_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		account.ID, account.Username, account.Email, account.Name, account.Surname,
		account.PasswordHash, account.CreatedAt, account.LastLogin, account.Role.ID)
	if err != nil {
		if mapped := mapUniqueViolation(err, account); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// UpdateAccount persists changes to an existing account
func (r *PostgresAccountRepository) UpdateAccount(ctx context.Context, account Account) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts
		 SET username = $2, email = $3, name = $4, surname = $5,
		     password_hash = $6, last_login = $7, role_id = $8
		 WHERE id = $1`,
		account.ID, account.Username, account.Email, account.Name, account.Surname,
		account.PasswordHash, account.LastLogin, account.Role.ID)
	if err != nil {
		if mapped := mapUniqueViolation(err, account); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.AccountNotFound(account.ID)
	}
	return nil
}

// ExistsByID reports whether an account id is in use
func (r *PostgresAccountRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`, id)
}

// ExistsByUsername reports whether a username is in use, ignoring case
func (r *PostgresAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE lower(username) = lower($1))`, username)
}

// ExistsByEmail reports whether an email is in use, ignoring case
func (r *PostgresAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE lower(email) = lower($1))`, email)
}

func (r *PostgresAccountRepository) exists(ctx context.Context, query, arg string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return exists, nil
}

// mapUniqueViolation translates a 23505 unique violation into the core's
// typed conflict for the constraint that fired. Returns nil for other errors.
func mapUniqueViolation(err error, account Account) error {
	var pgErr *pgconn.PgError
	if !stderrors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch pgErr.ConstraintName {
	case constraintAccountsPkey:
		return ErrIDConflict
	case constraintAccountsUsername:
		return errors.DuplicateUsername(account.Username)
	case constraintAccountsEmail:
		return errors.DuplicateEmail(account.Email)
	default:
		return nil
	}
}
