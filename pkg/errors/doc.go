// Package errors provides structured error handling with error codes for academy-idm.
//
// This package standardizes error handling across the identity core with typed
// error codes, structured error details, and automatic HTTP status code mapping.
//
// # Overview
//
// The errors package provides:
//   - Structured Error type with error codes
//   - Predefined error codes for the identity domain
//   - Error wrapping with context
//   - HTTP status code mapping
//   - Error inspection utilities
//
// # Basic Usage
//
// Creating errors with codes:
//
//	import "github.com/edustack/academy-idm/pkg/errors"
//
//	// Create a simple error
//	err := errors.New(errors.ErrCodeAccountNotFound, "account not found")
//
//	// Create error with formatted message
//	err := errors.Newf(errors.ErrCodeInvalidInput, "invalid email: %s", email)
//
//	// Wrap an existing error
//	err := errors.Wrap(dbErr, errors.ErrCodeInternal, "failed to query database")
//
//	// Use convenience constructors
//	err := errors.RoleNotFound(roleID)
//	err := errors.DuplicateUsername(username)
//	err := errors.InvalidInput("email", "invalid format")
//
// # Error Inspection
//
// Callers branch on codes, not concrete types:
//
//	if errors.IsCode(err, errors.ErrCodeRoleNotFound) {
//		// handle missing role
//	}
//
//	status := errors.MapErrorCodeToHTTPStatus(errors.GetCode(err))
//
// Hash verification failure (ErrCodeInvalidCredentials) and missing accounts
// (ErrCodeAccountNotFound) are kept as distinct codes. A calling boundary may
// choose to present both uniformly to avoid user-enumeration leaks; the core
// never collapses them itself.
package errors
