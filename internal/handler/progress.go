package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/circuitlab/circuitlab/api/internal/domain"
	"github.com/circuitlab/circuitlab/api/internal/dto"
	"github.com/circuitlab/circuitlab/api/internal/service"
)

// ProgressHandler handles progress endpoints
type ProgressHandler struct {
	progressService *service.ProgressService
	logger          *zap.Logger
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		logger:          logger,
	}
}

// ListProgress handles GET /progress?userId=&experimentId=
func (h *ProgressHandler) ListProgress(c *fiber.Ctx) error {
	filter, ok := dto.ProgressFilter(c)
	if !ok {
		return c.JSON([]domain.ProgressRecord{})
	}

	records, err := h.progressService.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.logger, err, "failed to list progress")
	}

	return c.JSON(records)
}

// UpsertProgress handles POST /progress.
// Responds 201 when a record was created and 200 when an existing one was updated.
func (h *ProgressHandler) UpsertProgress(c *fiber.Ctx) error {
	var input domain.ProgressInput
	if err := dto.ParseAndValidate(c, &input); err != nil {
		return respondError(c, h.logger, err, "invalid request body")
	}

	record, created, err := h.progressService.Upsert(c.UserContext(), &input)
	if err != nil {
		return respondError(c, h.logger, err, "failed to upsert progress")
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(record)
}

// RegisterRoutes registers progress routes
func (h *ProgressHandler) RegisterRoutes(router fiber.Router) {
	progress := router.Group("/progress")
	progress.Get("/", h.ListProgress)
	progress.Post("/", h.UpsertProgress)
}
