package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig configures the CORS middleware
type CORSConfig struct {
	// AllowOrigins lists allowed origins. "*" allows any origin and
	// "*.example.com" allows its subdomains.
	AllowOrigins []string
	// AllowMethods is a list of allowed methods
	AllowMethods []string
	// AllowHeaders is a list of allowed headers
	AllowHeaders []string
	// ExposeHeaders is a list of headers to expose
	ExposeHeaders []string
	// AllowCredentials indicates whether credentials are allowed
	AllowCredentials bool
	// MaxAge indicates how long the results of a preflight request can be cached, in seconds
	MaxAge int
}

// DefaultCORSConfig returns default CORS config
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPut,
			fiber.MethodDelete,
			fiber.MethodOptions,
			fiber.MethodHead,
		},
		AllowHeaders: []string{
			fiber.HeaderOrigin,
			fiber.HeaderContentType,
			fiber.HeaderAccept,
			RequestIDHeader,
		},
		ExposeHeaders: []string{
			RequestIDHeader,
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		MaxAge: 86400,
	}
}

// CORSMiddleware creates a CORS middleware
type CORSMiddleware struct {
	config CORSConfig
}

// NewCORSMiddleware creates a new CORS middleware
func NewCORSMiddleware(config CORSConfig) *CORSMiddleware {
	return &CORSMiddleware{
		config: config,
	}
}

// allowedOrigin returns the value for Access-Control-Allow-Origin, empty when
// the origin is not allowed
func (m *CORSMiddleware) allowedOrigin(origin string) string {
	for _, o := range m.config.AllowOrigins {
		switch {
		case o == "*":
			if m.config.AllowCredentials && origin != "" {
				// "*" is not valid together with credentials
				return origin
			}
			return "*"
		case o == origin:
			return origin
		case strings.HasPrefix(o, "*.") && strings.HasSuffix(origin, o[1:]):
			return origin
		}
	}
	return ""
}

// Handler returns the CORS handler
func (m *CORSMiddleware) Handler() fiber.Handler {
	allowMethods := strings.Join(m.config.AllowMethods, ", ")
	allowHeaders := strings.Join(m.config.AllowHeaders, ", ")
	exposeHeaders := strings.Join(m.config.ExposeHeaders, ", ")

	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		allowOrigin := m.allowedOrigin(origin)

		if allowOrigin == "" {
			return c.Next()
		}

		c.Set(fiber.HeaderAccessControlAllowOrigin, allowOrigin)
		if allowOrigin != "*" {
			c.Vary(fiber.HeaderOrigin)
		}
		if m.config.AllowCredentials {
			c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
		}
		if exposeHeaders != "" {
			c.Set(fiber.HeaderAccessControlExposeHeaders, exposeHeaders)
		}

		if c.Method() == fiber.MethodOptions {
			c.Set(fiber.HeaderAccessControlAllowMethods, allowMethods)
			c.Set(fiber.HeaderAccessControlAllowHeaders, allowHeaders)
			if m.config.MaxAge > 0 {
				c.Set(fiber.HeaderAccessControlMaxAge, strconv.Itoa(m.config.MaxAge))
			}
			return c.SendStatus(fiber.StatusNoContent)
		}

		return c.Next()
	}
}
