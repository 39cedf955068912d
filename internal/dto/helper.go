package dto

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/circuitlab/circuitlab/api/internal/domain"
	apperrors "github.com/circuitlab/circuitlab/api/internal/pkg/errors"
	"github.com/circuitlab/circuitlab/api/internal/validator"
)

// ParseBody decodes the JSON request body into v with the app's JSON decoder.
// The Content-Type header is not required. Unknown fields are ignored.
// A missing or malformed body yields a BAD_REQUEST error.
func ParseBody(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(body) == 0 {
		return apperrors.BadRequest("request body is required")
	}
	if err := c.App().Config().JSONDecoder(body, v); err != nil {
		return apperrors.BadRequest("invalid request body").WithError(err)
	}
	return nil
}

// ParseAndValidate parses the request body and validates it.
// Parse failures are BAD_REQUEST, failed constraints VALIDATION_ERROR.
func ParseAndValidate(c *fiber.Ctx, v any) error {
	if err := ParseBody(c, v); err != nil {
		return err
	}
	return validator.ValidateInput(v)
}

// ProgressFilter builds a progress filter from the userId and experimentId
// query parameters. The second result is false when the filter cannot match
// any record, which is the case for a non-integer experimentId.
func ProgressFilter(c *fiber.Ctx) (*domain.ProgressFilter, bool) {
	filter := &domain.ProgressFilter{}

	// query values alias the request buffer, which is reused after the handler returns
	if userID := c.Query("userId"); userID != "" {
		userID = utils.CopyString(userID)
		filter.UserID = &userID
	}

	if raw := c.Query("experimentId"); raw != "" {
		experimentID, err := strconv.Atoi(raw)
		if err != nil {
			return filter, false
		}
		filter.ExperimentID = &experimentID
	}

	return filter, true
}
