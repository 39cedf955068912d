package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/circuitlab/circuitlab/api/internal/domain"
	"github.com/circuitlab/circuitlab/api/internal/dto"
	"github.com/circuitlab/circuitlab/api/internal/service"
)

// ExperimentsHandler handles experiment catalogue endpoints
type ExperimentsHandler struct {
	experimentService *service.ExperimentService
	logger            *zap.Logger
}

// NewExperimentsHandler creates a new experiments handler
func NewExperimentsHandler(experimentService *service.ExperimentService, logger *zap.Logger) *ExperimentsHandler {
	return &ExperimentsHandler{
		experimentService: experimentService,
		logger:            logger,
	}
}

// ListExperiments handles GET /experiments
func (h *ExperimentsHandler) ListExperiments(c *fiber.Ctx) error {
	experiments, err := h.experimentService.List(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "failed to list experiments")
	}

	return c.JSON(experiments)
}

// GetExperiment handles GET /experiments/:id
func (h *ExperimentsHandler) GetExperiment(c *fiber.Ctx) error {
	id, err := parseExperimentID(c)
	if err != nil {
		return respondError(c, h.logger, err, "invalid experiment id")
	}

	experiment, err := h.experimentService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "failed to get experiment")
	}

	return c.JSON(experiment)
}

// CreateExperiment handles POST /experiments
func (h *ExperimentsHandler) CreateExperiment(c *fiber.Ctx) error {
	var input domain.ExperimentInput
	if err := dto.ParseAndValidate(c, &input); err != nil {
		return respondError(c, h.logger, err, "invalid request body")
	}

	experiment, err := h.experimentService.Create(c.UserContext(), &input)
	if err != nil {
		return respondError(c, h.logger, err, "failed to create experiment")
	}

	return c.Status(fiber.StatusCreated).JSON(experiment)
}

// UpdateExperiment handles PUT /experiments/:id
func (h *ExperimentsHandler) UpdateExperiment(c *fiber.Ctx) error {
	id, err := parseExperimentID(c)
	if err != nil {
		return respondError(c, h.logger, err, "invalid experiment id")
	}

	var patch domain.ExperimentPatch
	if err := dto.ParseAndValidate(c, &patch); err != nil {
		return respondError(c, h.logger, err, "invalid request body")
	}

	experiment, err := h.experimentService.Update(c.UserContext(), id, &patch)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update experiment")
	}

	return c.JSON(experiment)
}

// DeleteExperiment handles DELETE /experiments/:id
func (h *ExperimentsHandler) DeleteExperiment(c *fiber.Ctx) error {
	id, err := parseExperimentID(c)
	if err != nil {
		return respondError(c, h.logger, err, "invalid experiment id")
	}

	experiment, err := h.experimentService.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "failed to delete experiment")
	}

	return c.JSON(experiment)
}

// GetEmbed handles GET /experiments/:id/embed
func (h *ExperimentsHandler) GetEmbed(c *fiber.Ctx) error {
	id, err := parseExperimentID(c)
	if err != nil {
		return respondError(c, h.logger, err, "invalid experiment id")
	}

	embed, err := h.experimentService.EmbedURL(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "failed to resolve experiment embed")
	}

	return c.JSON(embed)
}

// RegisterRoutes registers experiment routes
func (h *ExperimentsHandler) RegisterRoutes(router fiber.Router) {
	experiments := router.Group("/experiments")
	experiments.Get("/", h.ListExperiments)
	experiments.Post("/", h.CreateExperiment)
	experiments.Get("/:id", h.GetExperiment)
	experiments.Put("/:id", h.UpdateExperiment)
	experiments.Delete("/:id", h.DeleteExperiment)
	experiments.Get("/:id/embed", h.GetEmbed)
}
