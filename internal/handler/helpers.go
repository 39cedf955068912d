package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/circuitlab/circuitlab/api/internal/middleware"
	apperrors "github.com/circuitlab/circuitlab/api/internal/pkg/errors"
)

// respondError writes err as a JSON error body with the matching status.
// Server side failures are logged and reported to Sentry; client errors are
// left to the access log.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, msg string) error {
	status, body := apperrors.ToResponse(err)
	if status >= fiber.StatusInternalServerError {
		logger.Error(msg,
			zap.Error(err),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
		middleware.CaptureError(c, err)
	}
	return c.Status(status).JSON(body)
}

// parseExperimentID reads the :id path parameter.
// Ids that are not integers cannot name an experiment, so they are reported as not found.
func parseExperimentID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, apperrors.NotFound("experiment")
	}
	return id, nil
}
