// Package validator wraps go-playground/validator for request inputs.
//
// Struct tags declare the rules (`validate:"required"`). Messages use the
// JSON field names so they can be returned to API clients unchanged.
// ValidateInput converts failures into apperrors validation errors.
package validator
