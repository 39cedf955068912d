package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/circuitlab/circuitlab/api/internal/domain"
	"github.com/circuitlab/circuitlab/api/internal/dto"
	"github.com/circuitlab/circuitlab/api/internal/service"
)

// UsersHandler handles user endpoints
type UsersHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(userService *service.UserService, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers handles GET /users
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.List(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "failed to list users")
	}

	return c.JSON(users)
}

// GetUser handles GET /users/:id
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, "failed to get user")
	}

	return c.JSON(user)
}

// CreateUser handles POST /users
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	var input domain.UserInput
	if err := dto.ParseAndValidate(c, &input); err != nil {
		return respondError(c, h.logger, err, "invalid request body")
	}

	user, err := h.userService.Create(c.UserContext(), &input)
	if err != nil {
		return respondError(c, h.logger, err, "failed to create user")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser handles PUT /users/:id
func (h *UsersHandler) UpdateUser(c *fiber.Ctx) error {
	var patch domain.UserPatch
	if err := dto.ParseAndValidate(c, &patch); err != nil {
		return respondError(c, h.logger, err, "invalid request body")
	}

	user, err := h.userService.Update(c.UserContext(), c.Params("id"), &patch)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update user")
	}

	return c.JSON(user)
}

// DeleteUser handles DELETE /users/:id
func (h *UsersHandler) DeleteUser(c *fiber.Ctx) error {
	user, err := h.userService.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, "failed to delete user")
	}

	return c.JSON(user)
}

// RegisterRoutes registers user routes
func (h *UsersHandler) RegisterRoutes(router fiber.Router) {
	users := router.Group("/users")
	users.Get("/", h.ListUsers)
	users.Post("/", h.CreateUser)
	users.Get("/:id", h.GetUser)
	users.Put("/:id", h.UpdateUser)
	users.Delete("/:id", h.DeleteUser)
}
