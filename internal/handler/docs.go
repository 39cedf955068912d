package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/circuitlab/circuitlab/api/docs"
)

// DocsHandler handles API documentation endpoints
type DocsHandler struct {
	swaggerPage string
}

// NewDocsHandler creates a new docs handler. specURL is where the browser
// fetches the OpenAPI document from.
func NewDocsHandler(specURL string) *DocsHandler {
	return &DocsHandler{
		swaggerPage: strings.ReplaceAll(swaggerUITemplate, "{{specURL}}", specURL),
	}
}

// RegisterRoutes registers documentation routes
func (h *DocsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/openapi.yaml", h.ServeOpenAPISpec)
	router.Get("/docs", h.ServeSwaggerUI)
}

// ServeOpenAPISpec serves the OpenAPI YAML specification
func (h *DocsHandler) ServeOpenAPISpec(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/x-yaml")
	return c.Send(docs.OpenAPISpec)
}

// ServeSwaggerUI serves the Swagger UI HTML page
func (h *DocsHandler) ServeSwaggerUI(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(h.swaggerPage)
}

const swaggerUITemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Circuit Lab API Documentation</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css">
    <style>
        body { margin: 0; background: #fafafa; }
        .swagger-ui .topbar { display: none; }
    </style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: "{{specURL}}",
                dom_id: '#swagger-ui',
                deepLinking: true,
                displayRequestDuration: true
            });
        };
    </script>
</body>
</html>`
