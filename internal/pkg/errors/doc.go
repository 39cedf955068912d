// Package errors provides application error types for the Circuit Lab API.
//
// This package defines:
//   - AppError type with error classification
//   - Error constructors for common error types
//   - Error type checking helpers
//   - HTTP status code mapping
//
// # Error Types
//
//   - Validation: Missing required field on create or upsert (400)
//   - BadRequest: Body does not parse as the expected structure (400)
//   - NotFound: Id does not resolve to a stored record (404)
//   - Conflict: Duplicate unique key, such as a user email (409)
//   - Internal: Unexpected server error (500)
//
// # Usage
//
// Create errors using constructor functions:
//
//	return apperrors.NotFound("experiment")
//	return apperrors.Validation("title is required")
//
// Check error types:
//
//	if apperrors.IsNotFound(err) {
//	    // Handle not found
//	}
//
// # Error Wrapping
//
// Errors support wrapping with fmt.Errorf:
//
//	return fmt.Errorf("update failed: %w", apperrors.NotFound("user"))
package errors
