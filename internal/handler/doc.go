// Package handler contains the fiber HTTP handlers of the lab API.
//
// # Route Organization
//
// Resource routes hang off the configured base path (default /api):
//   - /experiments, /experiments/:id, /experiments/:id/embed
//   - /users, /users/:id
//   - /progress
//
// Health, version, metrics and documentation routes are mounted at the root.
//
// # Error Handling
//
// Every failure is written as {"error", "code", "details"?} using
// apperrors.ToResponse, so the status code follows the AppError kind.
package handler
