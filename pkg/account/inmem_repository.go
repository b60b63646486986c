package account

import (
	"context"
	"strings"
	"sync"

	"github.com/edustack/academy-idm/pkg/errors"
)

// InMemoryAccountRepository implements AccountRepository using in-memory
// storage. It enforces the same uniqueness guarantees the Postgres schema
// does, so the service's conflict handling can be exercised without a
// database.
type InMemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]Account // accountID -> Account
}

// NewInMemoryAccountRepository creates a new in-memory account repository
func NewInMemoryAccountRepository() *InMemoryAccountRepository {
	return &InMemoryAccountRepository{
		accounts: make(map[string]Account),
	}
}

// GetAccount retrieves an account by id
func (r *InMemoryAccountRepository) GetAccount(ctx context.Context, id string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return Account{}, errors.AccountNotFound(id)
	}
	return account, nil
}

// GetAccountByUsername retrieves an account by username
func (r *InMemoryAccountRepository) GetAccountByUsername(ctx context.Context, username string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, account := range r.accounts {
		if strings.EqualFold(account.Username, username) {
			return account, nil
		}
	}
	return Account{}, errors.AccountNotFound(username)
}

// CreateAccount persists a new account, enforcing id, username and email
// uniqueness
func (r *InMemoryAccountRepository) CreateAccount(ctx context.Context, account Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; ok {
		return ErrIDConflict
	}
	for _, existing := range r.accounts {
		if strings.EqualFold(existing.Username, account.Username) {
			return errors.DuplicateUsername(account.Username)
		}
		if strings.EqualFold(existing.Email, account.Email) {
			return errors.DuplicateEmail(account.Email)
		}
	}
	r.accounts[account.ID] = account
	return nil
}

// UpdateAccount persists changes to an existing account
func (r *InMemoryAccountRepository) UpdateAccount(ctx context.Context, account Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; !ok {
		return errors.AccountNotFound(account.ID)
	}
	for id, existing := range r.accounts {
		if id == account.ID {
			continue
		}
		if strings.EqualFold(existing.Username, account.Username) {
			return errors.DuplicateUsername(account.Username)
		}
		if strings.EqualFold(existing.Email, account.Email) {
			return errors.DuplicateEmail(account.Email)
		}
	}
	r.accounts[account.ID] = account
	return nil
}

// ExistsByID reports whether an account id is in use
func (r *InMemoryAccountRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.accounts[id]
	return ok, nil
}

// ExistsByUsername reports whether a username is in use
func (r *InMemoryAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, existing := range r.accounts {
		if strings.EqualFold(existing.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

// ExistsByEmail reports whether an email is in use
func (r *InMemoryAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, existing := range r.accounts {
		if strings.EqualFold(existing.Email, email) {
			return true, nil
		}
	}
	return false, nil
}
