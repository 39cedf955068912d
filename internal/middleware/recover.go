package middleware

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/circuitlab/circuitlab/api/internal/pkg/errors"
)

const sentryHubKey = "sentry_hub"

// SentryConfig holds Sentry-specific configuration
type SentryConfig struct {
	DSN              string
	Environment      string
	Release          string
	Debug            bool
	SampleRate       float64
	TracesSampleRate float64
}

// InitSentry initializes the Sentry SDK. An empty DSN leaves it disabled.
func InitSentry(config SentryConfig) error {
	if config.DSN == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              config.DSN,
		Environment:      config.Environment,
		Release:          config.Release,
		Debug:            config.Debug,
		SampleRate:       config.SampleRate,
		TracesSampleRate: config.TracesSampleRate,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Sentry: %w", err)
	}

	return nil
}

// FlushSentry flushes any buffered events to Sentry
func FlushSentry(timeout time.Duration) {
	sentry.Flush(timeout)
}

// RecoverWithSentry turns panics into a 500 JSON error, logs them and,
// when enabled, reports them to Sentry
func RecoverWithSentry(logger *zap.Logger, sentryEnabled bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		var hub *sentry.Hub
		if sentryEnabled {
			hub = sentry.CurrentHub().Clone()
			setSentryRequestContext(hub, c)
			hub.Scope().SetTag("request_id", GetRequestID(c))
			c.Locals(sentryHubKey, hub)
		}

		defer func() {
			r := recover()
			if r == nil {
				return
			}
			stack := debug.Stack()

			var panicErr error
			switch v := r.(type) {
			case error:
				panicErr = v
			default:
				panicErr = fmt.Errorf("%v", v)
			}

			logger.Error("panic recovered",
				zap.Error(panicErr),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.String("ip", c.IP()),
				zap.String("stack", string(stack)),
				zap.String("request_id", GetRequestID(c)),
			)

			if hub != nil {
				hub.Scope().SetExtra("stack_trace", string(stack))
				hub.Scope().SetLevel(sentry.LevelFatal)

				if eventID := hub.RecoverWithContext(c.Context(), r); eventID != nil {
					logger.Info("panic reported to Sentry", zap.String("event_id", string(*eventID)))
				}
				hub.Flush(2 * time.Second)
			}

			status, body := apperrors.ToResponse(panicErr)
			err = c.Status(status).JSON(body)
		}()

		return c.Next()
	}
}

// CaptureError reports an error to Sentry from a Fiber context.
// It is a no-op when Sentry was never initialized.
func CaptureError(c *fiber.Ctx, err error) {
	hub, ok := c.Locals(sentryHubKey).(*sentry.Hub)
	if !ok || hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetExtra("path", c.Path())
		scope.SetExtra("method", c.Method())
		scope.SetTag("request_id", GetRequestID(c))
		hub.CaptureException(err)
	})
}

// setSentryRequestContext sets request context on a Sentry hub from Fiber context
func setSentryRequestContext(hub *sentry.Hub, c *fiber.Ctx) {
	headers := make(map[string]string)
	c.Request().Header.VisitAll(func(key, value []byte) {
		k := string(key)
		if k != fiber.HeaderAuthorization && k != fiber.HeaderCookie {
			headers[k] = string(value)
		}
	})

	hub.Scope().SetContext("Request", map[string]interface{}{
		"url":          c.OriginalURL(),
		"method":       c.Method(),
		"headers":      headers,
		"query_string": string(c.Request().URI().QueryString()),
		"remote_addr":  c.IP(),
	})
}
