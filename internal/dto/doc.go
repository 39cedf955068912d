// Package dto holds the request parsing helpers shared by the HTTP handlers.
//
// Request and response bodies are the domain input and projection types;
// this package only turns a fiber request into them:
//
//	var input domain.ExperimentInput
//	if err := dto.ParseAndValidate(c, &input); err != nil {
//	    return err
//	}
//
// Errors are AppErrors, ready for apperrors.ToResponse.
package dto
