// Package account manages the account lifecycle for academy-idm.
//
// This package owns the persisted Account shape, its wire representations,
// and the service operations that mutate it: creation, selective profile
// update, role assignment, login stamping and password change.
//
// # Overview
//
// The account package provides:
//   - The Account entity with identity-based equality
//   - Full and profile DTO projections, both without the password hash
//   - The selective-update law: only non-blank fields overwrite stored data
//   - AccountService orchestrating role resolution, id allocation and
//     credential hashing
//   - Repository pattern with PostgreSQL and in-memory backends
//
// # Basic Usage
//
//	import "github.com/edustack/academy-idm/pkg/account"
//
//	repo := account.NewPostgresAccountRepository(pool)
//	service := account.NewAccountService(repo, roleService,
//		password.NewArgon2Hasher(), accountid.NewAllocator(repo))
//
//	created, err := service.CreateAccount(ctx, account.CreateAccountParams{
//		Username: "alice",
//		Email:    "alice@campus.edu",
//		Password: "s3cret",
//		RoleID:   "STUDENT",
//	})
//
// # Uniqueness
//
// Username, email and id uniqueness are pre-checked best-effort and enforced
// authoritatively by the storage constraints. An id-level race surfaces as
// ErrIDConflict and is retried with a fresh allocation; username and email
// races surface as DUPLICATE_USERNAME / DUPLICATE_EMAIL.
package account
