package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/circuitlab/circuitlab/api/internal/pkg/circuitbreaker"
	apperrors "github.com/circuitlab/circuitlab/api/internal/pkg/errors"
	"github.com/circuitlab/circuitlab/api/internal/pkg/metrics"
)

// RateLimitConfig configures the rate limiter
type RateLimitConfig struct {
	// Max requests per window
	Max int
	// Window duration
	Window time.Duration
	// Prefix of the Redis keys
	KeyPrefix string
	// Key generator function
	KeyGenerator func(*fiber.Ctx) string
	// Skip function
	Skip func(*fiber.Ctx) bool
	// Custom limit exceeded handler
	LimitReached fiber.Handler
	// Logger receives Redis failures; requests are allowed through when Redis is down
	Logger *zap.Logger
	// Breaker short-circuits Redis calls after repeated failures
	Breaker *circuitbreaker.CircuitBreaker
}

// DefaultRateLimitConfig returns default rate limit config
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Max:       100,
		Window:    time.Minute,
		KeyPrefix: "circuitlab:ratelimit",
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Skip: CombinedSkipper(HealthSkipper, MetricsSkipper),
		LimitReached: func(c *fiber.Ctx) error {
			status, body := apperrors.ToResponse(apperrors.RateLimited())
			return c.Status(status).JSON(body)
		},
		Logger: zap.NewNop(),
	}
}

// RateLimitMiddleware is a sliding window rate limiter backed by Redis
type RateLimitMiddleware struct {
	redis  *redis.Client
	config RateLimitConfig
}

// NewRateLimitMiddleware creates a new rate limit middleware.
// Zero fields of config fall back to DefaultRateLimitConfig.
func NewRateLimitMiddleware(redisClient *redis.Client, config RateLimitConfig) *RateLimitMiddleware {
	def := DefaultRateLimitConfig()
	if config.Max <= 0 {
		config.Max = def.Max
	}
	if config.Window <= 0 {
		config.Window = def.Window
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = def.KeyPrefix
	}
	if config.KeyGenerator == nil {
		config.KeyGenerator = def.KeyGenerator
	}
	if config.LimitReached == nil {
		config.LimitReached = def.LimitReached
	}
	if config.Logger == nil {
		config.Logger = def.Logger
	}
	if config.Breaker == nil {
		logger := config.Logger
		config.Breaker = circuitbreaker.New(circuitbreaker.Config{
			Name: "redis",
			OnStateChange: func(name string, from, to circuitbreaker.State) {
				logger.Warn("circuit breaker state changed",
					zap.String("name", name),
					zap.Stringer("from", from),
					zap.Stringer("to", to),
				)
				metrics.SetBreakerState(name, int(to))
			},
		})
	}

	return &RateLimitMiddleware{
		redis:  redisClient,
		config: config,
	}
}

// Handler returns the rate limit handler
func (m *RateLimitMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.config.Skip != nil && m.config.Skip(c) {
			return c.Next()
		}

		key := fmt.Sprintf("%s:%s", m.config.KeyPrefix, m.config.KeyGenerator(c))
		now := time.Now()
		windowStart := now.Add(-m.config.Window).UnixMicro()
		reset := strconv.FormatInt(now.Add(m.config.Window).Unix(), 10)
		ctx := c.UserContext()

		var count *redis.IntCmd
		err := m.config.Breaker.Execute(ctx, func(ctx context.Context) error {
			_, err := m.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(windowStart, 10))
				count = pipe.ZCard(ctx, key)
				return nil
			})
			return err
		})
		if err != nil {
			m.config.Logger.Warn("rate limiter unavailable, allowing request",
				zap.Error(err),
				zap.String("request_id", GetRequestID(c)),
			)
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(m.config.Max))
		c.Set("X-RateLimit-Reset", reset)

		if count.Val() >= int64(m.config.Max) {
			c.Set("X-RateLimit-Remaining", "0")
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(m.config.Window.Seconds())))
			return m.config.LimitReached(c)
		}

		_, err = m.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.ZAdd(ctx, key, redis.Z{
				Score:  float64(now.UnixMicro()),
				Member: fmt.Sprintf("%d:%s", now.UnixNano(), GetRequestID(c)),
			})
			pipe.Expire(ctx, key, m.config.Window*2)
			return nil
		})
		if err != nil {
			m.config.Logger.Warn("failed to record request for rate limiting", zap.Error(err))
		}

		c.Set("X-RateLimit-Remaining", strconv.FormatInt(int64(m.config.Max)-count.Val()-1, 10))

		return c.Next()
	}
}
