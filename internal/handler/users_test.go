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

func newUsersApp(stores *testutil.Stores) *fiber.App {
	app := fiber.New()
	h := NewUsersHandler(service.NewUserService(stores.Users), zap.NewNop())
	h.RegisterRoutes(app.Group("/api"))
	return app
}

func TestUsersHandler_List(t *testing.T) {
	app := newUsersApp(testutil.NewSeededStores())

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	users := testutil.DecodeJSON[[]map[string]any](t, resp)
	require.Len(t, users, 3)
	for _, u := range users {
		assert.ElementsMatch(t, []string{"id", "name", "email", "role"}, keys(u))
	}
}

func TestUsersHandler_Create(t *testing.T) {
	t.Run("password never echoed and role defaults to student", func(t *testing.T) {
		app := newUsersApp(testutil.NewSeededStores())

		resp := testutil.DoJSON(t, app, http.MethodPost, "/api/users", testutil.NewTestUserInput("new@example.com"))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		body := testutil.DecodeJSON[map[string]any](t, resp)
		assert.Equal(t, map[string]any{
			"id":    "4",
			"name":  "Test Student",
			"email": "new@example.com",
			"role":  "student",
		}, body)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		app := newUsersApp(testutil.NewSeededStores())

		resp := testutil.DoJSON(t, app, http.MethodPost, "/api/users", testutil.NewTestUserInput("rahul@faculty.circuitlab.dev"))
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		body := testutil.DecodeJSON[apperrors.Response](t, resp)
		assert.Equal(t, "user with this email already exists", body.Error)

		list := testutil.DecodeJSON[[]domain.UserSummary](t, testutil.DoJSON(t, app, http.MethodGet, "/api/users", nil))
		assert.Len(t, list, 3)
	})

	t.Run("missing fields", func(t *testing.T) {
		app := newUsersApp(testutil.NewSeededStores())

		resp := testutil.DoJSON(t, app, http.MethodPost, "/api/users", map[string]any{"name": "x"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := testutil.DecodeJSON[apperrors.Response](t, resp)
		assert.Equal(t, apperrors.CodeValidation, body.Code)
		assert.Contains(t, body.Details, "email")
		assert.Contains(t, body.Details, "password")
	})
}

func TestUsersHandler_GetUpdateDelete(t *testing.T) {
	app := newUsersApp(testutil.NewSeededStores())

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/users/3", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	detail := testutil.DecodeJSON[map[string]any](t, resp)
	assert.Equal(t, []any{float64(1)}, detail["completedExperiments"])
	assert.Equal(t, []any{}, detail["managedExperiments"])

	resp = testutil.DoJSON(t, app, http.MethodPut, "/api/users/3", map[string]any{
		"id":       "9",
		"password": "ignored",
		"role":     "teacher",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	updated := testutil.DecodeJSON[map[string]any](t, resp)
	assert.Equal(t, "3", updated["id"])
	assert.Equal(t, "teacher", updated["role"])
	assert.NotContains(t, updated, "password")

	resp = testutil.DoJSON(t, app, http.MethodDelete, "/api/users/3", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	removed := testutil.DecodeJSON[map[string]any](t, resp)
	assert.ElementsMatch(t, []string{"id", "name", "email", "role"}, keys(removed))

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		resp = testutil.DoJSON(t, app, method, "/api/users/3", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, method)
	}
	resp = testutil.DoJSON(t, app, http.MethodPut, "/api/users/3", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
