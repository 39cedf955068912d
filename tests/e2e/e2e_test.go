//go:build e2e
// +build e2e

package e2e

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/circuitlab/circuitlab/api/internal/client"
	"github.com/circuitlab/circuitlab/api/internal/domain"
)

// E2ETestSuite runs end-to-end API tests against a running Circuit Lab instance
type E2ETestSuite struct {
	suite.Suite
	baseURL string
	client  *client.Client
	ctx     context.Context
}

func TestE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(E2ETestSuite))
}

func (s *E2ETestSuite) SetupSuite() {
	s.baseURL = os.Getenv("CIRCUITLAB_API_URL")
	if s.baseURL == "" {
		s.baseURL = "http://localhost:8080"
	}

	s.client = client.New(client.Config{
		Host:     s.baseURL,
		BasePath: os.Getenv("CIRCUITLAB_BASE_PATH"),
		Timeout:  30 * time.Second,
	})
	s.ctx = context.Background()

	// Wait for API to be ready
	s.waitForAPI()
}

func (s *E2ETestSuite) waitForAPI() {
	httpClient := &http.Client{Timeout: 2 * time.Second}
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(s.baseURL + "/readyz")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(time.Second)
	}
	s.T().Fatal("API failed to become ready within timeout")
}

// uniqueEmail keeps reruns against the same server from colliding
func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@e2e.circuitlab.dev", prefix, time.Now().UnixNano())
}

// ============ HEALTH CHECK TESTS ============

func (s *E2ETestSuite) TestHealthEndpoint() {
	resp, err := http.Get(s.baseURL + "/health")
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)
}

// ============ EXPERIMENT TESTS ============

func (s *E2ETestSuite) TestExperimentLifecycle() {
	t := s.T()

	created, err := s.client.CreateExperiment(s.ctx, &domain.ExperimentInput{
		Title:       "E2E Thevenin Equivalent",
		Description: "Reduce a network to a source and series resistance.",
		EmbedID:     "e2eThevenin",
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Zero(t, created.Completed)

	got, err := s.client.GetExperiment(s.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	embed, err := s.client.ExperimentEmbed(s.ctx, created.ID)
	require.NoError(t, err)
	assert.Contains(t, embed.URL, "e2eThevenin")

	students := 30
	updated, err := s.client.UpdateExperiment(s.ctx, created.ID, &domain.ExperimentPatch{TotalStudents: &students})
	require.NoError(t, err)
	assert.Equal(t, 30, updated.TotalStudents)
	assert.Equal(t, created.Title, updated.Title)

	deleted, err := s.client.DeleteExperiment(s.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = s.client.GetExperiment(s.ctx, created.ID)
	assert.True(t, client.IsNotFound(err))
}

func (s *E2ETestSuite) TestExperimentValidation() {
	_, err := s.client.CreateExperiment(s.ctx, &domain.ExperimentInput{Description: "no title"})
	assert.Equal(s.T(), http.StatusBadRequest, client.StatusCode(err))
}

// ============ USER TESTS ============

func (s *E2ETestSuite) TestUserLifecycle() {
	t := s.T()
	email := uniqueEmail("student")

	summary, err := s.client.CreateUser(s.ctx, &domain.UserInput{
		Name:     "E2E Student",
		Email:    email,
		Password: "e2e-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, summary.Role)

	_, err = s.client.CreateUser(s.ctx, &domain.UserInput{Name: "Dup", Email: email, Password: "x"})
	assert.True(t, client.IsConflict(err))

	detail, err := s.client.GetUser(s.ctx, summary.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.CompletedExperiments)
	assert.NotNil(t, detail.CompletedExperiments)

	_, err = s.client.DeleteUser(s.ctx, summary.ID)
	require.NoError(t, err)
}

// ============ PROGRESS TESTS ============

func (s *E2ETestSuite) TestConcurrentUpsertsMakeOneRecord() {
	t := s.T()

	user, err := s.client.CreateUser(s.ctx, &domain.UserInput{
		Name:     "E2E Racer",
		Email:    uniqueEmail("racer"),
		Password: "e2e-pass",
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.client.UpsertProgress(s.ctx, &domain.ProgressInput{UserID: user.ID, ExperimentID: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	records, err := s.client.ListProgress(s.ctx, &domain.ProgressFilter{UserID: &user.ID})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func (s *E2ETestSuite) TestCompletionStampsCompletedAt() {
	t := s.T()

	user, err := s.client.CreateUser(s.ctx, &domain.UserInput{
		Name:     "E2E Finisher",
		Email:    uniqueEmail("finisher"),
		Password: "e2e-pass",
	})
	require.NoError(t, err)

	rec, created, err := s.client.UpsertProgress(s.ctx, &domain.ProgressInput{UserID: user.ID, ExperimentID: 2})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Nil(t, rec.CompletedAt)

	done := true
	rec, created, err = s.client.UpsertProgress(s.ctx, &domain.ProgressInput{UserID: user.ID, ExperimentID: 2, Completed: &done})
	require.NoError(t, err)
	assert.False(t, created)
	assert.NotNil(t, rec.CompletedAt)
}
