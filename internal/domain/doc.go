// Package domain contains the core entities and types of the Circuit Lab API.
//
// This package defines:
//   - Entity types (Experiment, User, ProgressRecord)
//   - Input types for create operations
//   - Patch types for partial updates
//   - Projections returned by the user endpoints
//
// # Design Philosophy
//
// Domain types are storage-agnostic. Entities are plain values; stores hand
// out copies so callers can never mutate shared state.
//
// # Naming Conventions
//
// Types ending in "Input" are used for create operations.
// Types ending in "Patch" are used for partial updates; every field is
// optional and none of them carries an id, so an update can never change
// the identity of a record.
// Types ending in "Filter" are used for query operations.
package domain
