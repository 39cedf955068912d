package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecoverWithSentry(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)

	app := fiber.New()
	app.Use(RequestID())
	app.Use(RecoverWithSentry(zap.New(core), false))
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("capacitor exploded")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
	assert.Equal(t, "Internal server error", body["error"])

	entries := logs.FilterMessage("panic recovered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "capacitor exploded", entries[0].ContextMap()["error"])
	assert.Equal(t, resp.Header.Get(RequestIDHeader), entries[0].ContextMap()["request_id"])
}

func TestInitSentry_EmptyDSN(t *testing.T) {
	assert.NoError(t, InitSentry(SentryConfig{}))
}

func TestCaptureError_WithoutClient(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		CaptureError(c, assert.AnError)
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
