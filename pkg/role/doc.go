// Package role provides the fixed role hierarchy and role management for academy-idm.
//
// This package manages the four authorization tiers of the platform
// (STUDENT, TEACHER, ADMIN, SUPER_ADMIN) and the persisted roles that carry
// them, with support for PostgreSQL and in-memory storage backends through
// a repository interface.
//
// # Overview
//
// The role package provides:
//   - The fixed Kind hierarchy with level-based comparison
//   - Case-insensitive kind resolution by identifier or display name
//   - Persisted Role lifecycle (bootstrap, create, resolve)
//   - Repository pattern for database abstraction
//
// # Basic Usage
//
//	import "github.com/edustack/academy-idm/pkg/role"
//
//	// Create service
//	repo := role.NewPostgresRoleRepository(pool)
//	service := role.NewRoleService(repo)
//
//	// Seed the builtin kinds on startup
//	err := service.EnsureBuiltinRoles(ctx)
//
//	// Resolve a role by identifier or name
//	r, err := service.Resolve(ctx, "TEACHER")
//
// # Authorization Checks
//
// Kinds compare by level only:
//
//	kind, _ := role.ParseKindID("admin") // case-insensitive
//	if kind.HasMinimumLevel(role.Teacher) {
//		// admin outranks teacher
//	}
//
// Unknown identifiers fail with ROLE_NOT_FOUND, never a default kind.
package role
