package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/circuitlab/circuitlab/api/internal/middleware"
	apperrors "github.com/circuitlab/circuitlab/api/internal/pkg/errors"
)

// newApp builds the Fiber app with global middleware and all routes
func newApp(deps *Dependencies, sentryEnabled bool) *fiber.App {
	cfg := deps.Config
	logger := deps.Logger

	app := fiber.New(fiber.Config{
		AppName:               "Circuit Lab API",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: cfg.IsProduction(),
		ErrorHandler:          errorHandler(logger, sentryEnabled),
	})

	app.Use(middleware.RequestID())

	loggerMiddleware := middleware.NewLoggerMiddleware(middleware.DefaultLoggerConfig(logger))
	app.Use(loggerMiddleware.Handler())

	app.Use(middleware.RecoverWithSentry(logger, sentryEnabled))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	}
	app.Use(middleware.NewCORSMiddleware(corsConfig).Handler())

	metricsMiddleware := middleware.NewMetricsMiddleware(middleware.DefaultMetricsConfig())
	app.Use(metricsMiddleware.Handler())

	registerRoutes(app, deps)

	return app
}

// registerRoutes registers all HTTP routes
func registerRoutes(app *fiber.App, deps *Dependencies) {
	h := deps.Handlers

	// Operational routes live at the root regardless of the base path
	h.Health.RegisterRoutes(app)
	h.Docs.RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group(deps.Config.Server.BasePath)
	if deps.RateLimitMiddleware != nil {
		api.Use(deps.RateLimitMiddleware.Handler())
	}

	h.Experiments.RegisterRoutes(api)
	h.Users.RegisterRoutes(api)
	h.Progress.RegisterRoutes(api)
}

// errorHandler renders errors that escaped the handlers, such as unknown
// routes, in the common JSON error shape
func errorHandler(logger *zap.Logger, sentryEnabled bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			err = fromFiberError(e)
		}

		status, body := apperrors.ToResponse(err)

		if status >= fiber.StatusInternalServerError {
			logger.Error("request error",
				zap.Error(err),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.String("request_id", middleware.GetRequestID(c)),
			)
			if sentryEnabled {
				middleware.CaptureError(c, err)
			}
		}

		return c.Status(status).JSON(body)
	}
}

// fromFiberError maps a framework error onto the application error codes
func fromFiberError(e *fiber.Error) *apperrors.AppError {
	switch {
	case e.Code == fiber.StatusNotFound:
		return apperrors.New(apperrors.CodeNotFound, e.Message, e.Code)
	case e.Code == fiber.StatusTooManyRequests:
		return apperrors.RateLimited()
	case e.Code >= fiber.StatusInternalServerError:
		return apperrors.Internal(e.Message)
	default:
		return apperrors.New(apperrors.CodeBadRequest, e.Message, e.Code)
	}
}
