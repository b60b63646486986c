package account

import (
	"context"
	stderrors "errors"
	"time"

	"golang.org/x/exp/slog"

	"github.com/edustack/academy-idm/pkg/accountid"
	"github.com/edustack/academy-idm/pkg/errors"
	"github.com/edustack/academy-idm/pkg/password"
	"github.com/edustack/academy-idm/pkg/role"
)

// ErrIDConflict signals that a concurrently allocated account id hit the
// storage unique constraint. The service retries allocation on it.
var ErrIDConflict = stderrors.New("account id already in use")

// Allocation retries before giving up on an id-level race
const maxAllocateAttempts = 3

// AccountRepository defines the interface for account storage. Reads return
// accounts with the role fully populated.
type AccountRepository interface {
	GetAccount(ctx context.Context, id string) (Account, error)
	GetAccountByUsername(ctx context.Context, username string) (Account, error)
	CreateAccount(ctx context.Context, account Account) error
	UpdateAccount(ctx context.Context, account Account) error
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// Notifier delivers best-effort account notices. Failures are logged, never
// surfaced to the caller.
type Notifier interface {
	AccountCreated(ctx context.Context, email, username string) error
	PasswordChanged(ctx context.Context, email, username string) error
}

// AccountService orchestrates the account lifecycle
type AccountService struct {
	repo      AccountRepository
	roles     *role.RoleService
	hasher    password.Hasher
	allocator *accountid.Allocator
	notifier  Notifier
}

// AccountServiceOption configures optional collaborators
type AccountServiceOption func(*AccountService)

// WithNotifier attaches a notifier for account notices
func WithNotifier(n Notifier) AccountServiceOption {
	return func(s *AccountService) {
		s.notifier = n
	}
}

// NewAccountService creates a new account service
func NewAccountService(repo AccountRepository, roles *role.RoleService, hasher password.Hasher, allocator *accountid.Allocator, opts ...AccountServiceOption) *AccountService {
	s := &AccountService{
		repo:      repo,
		roles:     roles,
		hasher:    hasher,
		allocator: allocator,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateAccount resolves the requested role, allocates an id, hashes the
// password and persists the account. The uniqueness pre-checks are
// best-effort; the storage constraints are authoritative, and an id-level
// race is retried with a fresh allocation.
func (s *AccountService) CreateAccount(ctx context.Context, params CreateAccountParams) (Account, error) {
	resolvedRole, err := s.roles.Resolve(ctx, params.RoleID)
	if err != nil {
		return Account{}, err
	}

	if taken, err := s.repo.ExistsByUsername(ctx, params.Username); err != nil {
		return Account{}, err
	} else if taken {
		return Account{}, errors.DuplicateUsername(params.Username)
	}
	if taken, err := s.repo.ExistsByEmail(ctx, params.Email); err != nil {
		return Account{}, err
	} else if taken {
		return Account{}, errors.DuplicateEmail(params.Email)
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return Account{}, err
	}

	for attempt := 0; attempt < maxAllocateAttempts; attempt++ {
		id, err := s.allocator.Allocate(ctx)
		if err != nil {
			return Account{}, err
		}

		account := Account{
			ID:           id,
			Username:     params.Username,
			Email:        params.Email,
			Name:         params.Name,
			Surname:      params.Surname,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
			Role:         resolvedRole,
		}

		err = s.repo.CreateAccount(ctx, account)
		if err == nil {
			s.notifyCreated(ctx, account)
			return account, nil
		}
		if stderrors.Is(err, ErrIDConflict) {
			slog.Info("Account id raced, reallocating", "id", id, "attempt", attempt+1)
			continue
		}
		return Account{}, err
	}
	return Account{}, errors.Internal("could not allocate a free account id")
}

// UpdateProfile applies a selective profile update and persists the result
func (s *AccountService) UpdateProfile(ctx context.Context, id string, params UpdateProfileParams) (Account, error) {
	account, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return Account{}, err
	}

	ApplyProfileUpdate(&account, params)

	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return Account{}, err
	}
	return account, nil
}

// RecordLogin stamps the account's last login with the current time
func (s *AccountService) RecordLogin(ctx context.Context, id string) (Account, error) {
	account, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return Account{}, err
	}

	now := time.Now().UTC()
	account.LastLogin = &now

	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return Account{}, err
	}
	return account, nil
}

// AssignRole replaces the account's role with the resolved one
func (s *AccountService) AssignRole(ctx context.Context, id, roleID string) (Account, error) {
	resolvedRole, err := s.roles.Resolve(ctx, roleID)
	if err != nil {
		return Account{}, err
	}

	account, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return Account{}, err
	}

	account.Role = resolvedRole

	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return Account{}, err
	}
	return account, nil
}

// ChangePassword verifies the current password and stores a hash of the new
// one. A mismatch fails with INVALID_CREDENTIALS and leaves the stored hash
// unchanged.
func (s *AccountService) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	account, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return err
	}

	match, err := s.hasher.Verify(account.PasswordHash, currentPassword)
	if err != nil {
		return err
	}
	if !match {
		return errors.InvalidCredentials()
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	account.PasswordHash = newHash
	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.PasswordChanged(ctx, account.Email, account.Username); err != nil {
			slog.Error("Failed to send password changed notice", "username", account.Username, "err", err)
		}
	}
	return nil
}

// Authenticate verifies a username/password pair and stamps the login on
// success. A missing account and a failed verification stay distinct error
// kinds; the serving boundary decides whether to present them uniformly.
func (s *AccountService) Authenticate(ctx context.Context, username, plaintext string) (Account, error) {
	account, err := s.repo.GetAccountByUsername(ctx, username)
	if err != nil {
		return Account{}, err
	}

	match, err := s.hasher.Verify(account.PasswordHash, plaintext)
	if err != nil {
		return Account{}, err
	}
	if !match {
		return Account{}, errors.InvalidCredentials()
	}

	return s.RecordLogin(ctx, account.ID)
}

// GetAccount loads an account with its role populated
func (s *AccountService) GetAccount(ctx context.Context, id string) (Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *AccountService) notifyCreated(ctx context.Context, account Account) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.AccountCreated(ctx, account.Email, account.Username); err != nil {
		slog.Error("Failed to send account created notice", "username", account.Username, "err", err)
	}
}
