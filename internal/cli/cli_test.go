package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/circuitlab/circuitlab/api/internal/domain"
	"github.com/circuitlab/circuitlab/api/internal/handler"
	"github.com/circuitlab/circuitlab/api/internal/service"
	"github.com/circuitlab/circuitlab/api/internal/testutil"
)

func newTestServer(t *testing.T) string {
	t.Helper()

	stores := testutil.NewSeededStores()
	logger := zap.NewNop()

	app := fiber.New()
	api := app.Group("/api")
	handler.NewExperimentsHandler(service.NewExperimentService(stores.Experiments, ""), logger).RegisterRoutes(api)
	handler.NewUsersHandler(service.NewUserService(stores.Users), logger).RegisterRoutes(api)
	handler.NewProgressHandler(service.NewProgressService(stores.Progress), logger).RegisterRoutes(api)

	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return srv.URL
}

// run executes labctl with args against host and returns stdout and stderr
func run(t *testing.T, host string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--host", host}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExperimentsCommands(t *testing.T) {
	host := newTestServer(t)

	t.Run("list as table", func(t *testing.T) {
		out, _, err := run(t, host, "experiments", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "EMBED ID")
		assert.Contains(t, out, "3bmCuDXyNw5")
	})

	t.Run("create then get as json", func(t *testing.T) {
		out, _, err := run(t, host, "-o", "json", "experiments", "create",
			"--title", "Ohm's Law", "--description", "V = IR", "--embed-id", "ohm01")
		require.NoError(t, err)

		var created domain.Experiment
		require.NoError(t, json.Unmarshal([]byte(out), &created))
		assert.Equal(t, 7, created.ID)
		assert.Equal(t, "ohm01", created.EmbedID)

		out, _, err = run(t, host, "-o", "json", "exp", "update", "7", "--aim", "Verify Ohm's law")
		require.NoError(t, err)
		var updated domain.Experiment
		require.NoError(t, json.Unmarshal([]byte(out), &updated))
		assert.Equal(t, "Ohm's Law", updated.Title)
		assert.Equal(t, "Verify Ohm's law", updated.Aim)
	})

	t.Run("embed", func(t *testing.T) {
		out, _, err := run(t, host, "experiments", "embed", "2")
		require.NoError(t, err)
		assert.Contains(t, out, "a5Jgk0T8QeB")
	})

	t.Run("missing description is a validation error", func(t *testing.T) {
		_, _, err := run(t, host, "experiments", "create", "--title", "Only a title")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "VALIDATION_ERROR")
	})

	t.Run("non integer id", func(t *testing.T) {
		_, _, err := run(t, host, "experiments", "get", "abc")
		assert.ErrorContains(t, err, "must be an integer")
	})

	t.Run("delete unknown", func(t *testing.T) {
		_, _, err := run(t, host, "experiments", "delete", "99")
		assert.ErrorContains(t, err, "NOT_FOUND")
	})
}

func TestUsersCommands(t *testing.T) {
	host := newTestServer(t)

	out, _, err := run(t, host, "-o", "json", "users", "create",
		"--name", "Meera", "--email", "meera@student.circuitlab.dev", "--password", "pw", "--role", "teacher")
	require.NoError(t, err)
	var summary domain.UserSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "4", summary.ID)
	assert.Equal(t, domain.RoleTeacher, summary.Role)
	assert.NotContains(t, out, "password")

	out, _, err = run(t, host, "users", "update", "4", "--managed", "1,2")
	require.NoError(t, err)
	assert.Contains(t, out, "1,2")

	out, _, err = run(t, host, "users", "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "asha@student.circuitlab.dev")

	out, _, err = run(t, host, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Meera")

	_, _, err = run(t, host, "users", "delete", "4")
	require.NoError(t, err)
	_, _, err = run(t, host, "users", "get", "4")
	assert.ErrorContains(t, err, "404")
}

func TestProgressCommands(t *testing.T) {
	host := newTestServer(t)

	out, stderr, err := run(t, host, "-v", "-o", "json", "progress", "upsert",
		"--user-id", "2", "--experiment-id", "6", "--score", "70")
	require.NoError(t, err)
	assert.Contains(t, stderr, "created progress record 4")

	var rec domain.ProgressRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, 70.0, rec.Score)
	assert.False(t, rec.Completed)

	_, stderr, err = run(t, host, "-v", "progress", "upsert",
		"--user-id", "2", "--experiment-id", "6", "--completed")
	require.NoError(t, err)
	assert.Contains(t, stderr, "updated progress record 4")

	out, _, err = run(t, host, "-o", "json", "progress", "list", "--experiment-id", "6")
	require.NoError(t, err)
	var records []domain.ProgressRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.True(t, records[0].Completed)
	assert.NotNil(t, records[0].CompletedAt)
	assert.Equal(t, 70.0, records[0].Score)

	out, _, err = run(t, host, "progress", "list", "--user-id", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "COMPLETED AT")
}

func TestUnknownOutputFormat(t *testing.T) {
	_, _, err := run(t, "http://127.0.0.1:1", "-o", "yaml", "users", "list")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestJoinInts(t *testing.T) {
	assert.Equal(t, "-", joinInts(nil))
	assert.Equal(t, "1,2,3", joinInts([]int{1, 2, 3}))
}
