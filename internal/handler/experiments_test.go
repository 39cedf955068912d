package handler

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/circuitlab/circuitlab/api/internal/domain"
	apperrors "github.com/circuitlab/circuitlab/api/internal/pkg/errors"
	"github.com/circuitlab/circuitlab/api/internal/service"
	"github.com/circuitlab/circuitlab/api/internal/testutil"
)

func newExperimentsApp(stores *testutil.Stores) *fiber.App {
	app := fiber.New()
	h := NewExperimentsHandler(service.NewExperimentService(stores.Experiments, ""), zap.NewNop())
	h.RegisterRoutes(app.Group("/api"))
	return app
}

func TestExperimentsHandler_List(t *testing.T) {
	app := newExperimentsApp(testutil.NewSeededStores())

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/experiments", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	experiments := testutil.DecodeJSON[[]domain.Experiment](t, resp)
	require.Len(t, experiments, 6)
	assert.Equal(t, "Voltage Divider", experiments[0].Title)
}

func TestExperimentsHandler_ListEmpty(t *testing.T) {
	app := newExperimentsApp(testutil.NewEmptyStores())

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/experiments", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw := testutil.DecodeJSON[[]any](t, resp)
	assert.NotNil(t, raw)
	assert.Empty(t, raw)
}

func TestExperimentsHandler_Create(t *testing.T) {
	t.Run("returns the stored record with defaults", func(t *testing.T) {
		app := newExperimentsApp(testutil.NewSeededStores())

		resp := testutil.DoJSON(t, app, http.MethodPost, "/api/experiments", map[string]any{
			"title":       "Ohm's Law",
			"description": "x",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		body := testutil.DecodeJSON[map[string]any](t, resp)
		assert.Equal(t, map[string]any{
			"id":            float64(7),
			"title":         "Ohm's Law",
			"description":   "x",
			"embedId":       "",
			"aim":           "",
			"completed":     float64(0),
			"totalStudents": float64(0),
		}, body)

		get := testutil.DoJSON(t, app, http.MethodGet, "/api/experiments/7", nil)
		assert.Equal(t, http.StatusOK, get.StatusCode)
	})

	t.Run("missing description is a validation error", func(t *testing.T) {
		app := newExperimentsApp(testutil.NewSeededStores())

		resp := testutil.DoJSON(t, app, http.MethodPost, "/api/experiments", map[string]any{"title": "t"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := testutil.DecodeJSON[apperrors.Response](t, resp)
		assert.Equal(t, apperrors.CodeValidation, body.Code)
		assert.NotEmpty(t, body.Error)
		assert.Contains(t, body.Details, "description")
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		app := newExperimentsApp(testutil.NewSeededStores())

		resp := testutil.DoJSON(t, app, http.MethodPost, "/api/experiments", `{"title":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := testutil.DecodeJSON[apperrors.Response](t, resp)
		assert.Equal(t, apperrors.CodeBadRequest, body.Code)
	})
}

func TestExperimentsHandler_Get(t *testing.T) {
	app := newExperimentsApp(testutil.NewSeededStores())

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"existing", "/api/experiments/3", http.StatusOK},
		{"unknown", "/api/experiments/99", http.StatusNotFound},
		{"non-integer", "/api/experiments/abc", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.DoJSON(t, app, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.status, resp.StatusCode)

			if tt.status == http.StatusNotFound {
				body := testutil.DecodeJSON[apperrors.Response](t, resp)
				assert.Equal(t, "experiment not found", body.Error)
				assert.Equal(t, apperrors.CodeNotFound, body.Code)
			}
		})
	}
}

func TestExperimentsHandler_Update(t *testing.T) {
	t.Run("id in body is ignored", func(t *testing.T) {
		app := newExperimentsApp(testutil.NewSeededStores())

		resp := testutil.DoJSON(t, app, http.MethodPut, "/api/experiments/2", map[string]any{
			"id":    50,
			"title": "KVL and KCL",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		e := testutil.DecodeJSON[domain.Experiment](t, resp)
		assert.Equal(t, 2, e.ID)
		assert.Equal(t, "KVL and KCL", e.Title)
		assert.Equal(t, "a5Jgk0T8QeB", e.EmbedID)

		missing := testutil.DoJSON(t, app, http.MethodGet, "/api/experiments/50", nil)
		assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	})

	t.Run("unknown id", func(t *testing.T) {
		app := newExperimentsApp(testutil.NewSeededStores())

		resp := testutil.DoJSON(t, app, http.MethodPut, "/api/experiments/99", map[string]any{"title": "x"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		app := newExperimentsApp(testutil.NewSeededStores())

		resp := testutil.DoJSON(t, app, http.MethodPut, "/api/experiments/1", `not json`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestExperimentsHandler_Delete(t *testing.T) {
	app := newExperimentsApp(testutil.NewSeededStores())

	resp := testutil.DoJSON(t, app, http.MethodDelete, "/api/experiments/6", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	removed := testutil.DecodeJSON[domain.Experiment](t, resp)
	assert.Equal(t, "Half-Wave Rectifier", removed.Title)

	resp = testutil.DoJSON(t, app, http.MethodGet, "/api/experiments/6", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodDelete, "/api/experiments/6", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExperimentsHandler_GetEmbed(t *testing.T) {
	app := newExperimentsApp(testutil.NewSeededStores())

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/experiments/1/embed", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	embed := testutil.DecodeJSON[domain.ExperimentEmbed](t, resp)
	assert.Equal(t, domain.ExperimentEmbed{
		ExperimentID: 1,
		EmbedID:      "3bmCuDXyNw5",
		URL:          "https://www.tinkercad.com/embed/3bmCuDXyNw5?editbtn=1",
	}, embed)

	resp = testutil.DoJSON(t, app, http.MethodGet, "/api/experiments/77/embed", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
