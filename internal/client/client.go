// Package client is a Go client for the Circuit Lab JSON API.
//
// Example usage:
//
//	c := client.New(client.Config{Host: "http://localhost:8080"})
//
//	experiments, err := c.ListExperiments(ctx)
//	if err != nil {
//		return err
//	}
//
//	rec, created, err := c.UpsertProgress(ctx, &domain.ProgressInput{
//		UserID:       "1",
//		ExperimentID: experiments[0].ID,
//	})
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/circuitlab/circuitlab/api/internal/domain"
)

// Version is sent in the User-Agent header
const Version = "0.1.0"

// Config holds the configuration for the API client.
type Config struct {
	// Host is the API host URL. Defaults to http://localhost:8080.
	Host string

	// BasePath prefixes every resource path. Defaults to /api.
	BasePath string

	// Timeout is the request timeout. Defaults to 10 seconds.
	Timeout time.Duration

	// HTTPClient overrides the underlying client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to one Circuit Lab API instance.
type Client struct {
	config     Config
	httpClient *http.Client
}

// New creates a new API client.
func New(config Config) *Client {
	if config.Host == "" {
		config.Host = "http://localhost:8080"
	}
	config.Host = strings.TrimRight(config.Host, "/")
	if config.BasePath == "" {
		config.BasePath = "/api"
	}
	config.BasePath = "/" + strings.Trim(config.BasePath, "/")
	if config.BasePath == "/" {
		config.BasePath = ""
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

// APIError is a non-2xx response decoded from the error body
type APIError struct {
	StatusCode int
	Code       string            `json:"code"`
	Message    string            `json:"error"`
	Details    map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// StatusCode returns the HTTP status of an APIError, or 0 for other errors
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsConflict reports whether err is a 409 from the API
func IsConflict(err error) bool {
	return StatusCode(err) == http.StatusConflict
}

// ListExperiments returns the whole catalogue
func (c *Client) ListExperiments(ctx context.Context) ([]domain.Experiment, error) {
	var out []domain.Experiment
	_, err := c.do(ctx, http.MethodGet, "/experiments", nil, nil, &out)
	return out, err
}

// GetExperiment fetches one experiment
func (c *Client) GetExperiment(ctx context.Context, id int) (*domain.Experiment, error) {
	var out domain.Experiment
	if _, err := c.do(ctx, http.MethodGet, experimentPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateExperiment adds an experiment to the catalogue
func (c *Client) CreateExperiment(ctx context.Context, input *domain.ExperimentInput) (*domain.Experiment, error) {
	var out domain.Experiment
	if _, err := c.do(ctx, http.MethodPost, "/experiments", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateExperiment applies a partial update
func (c *Client) UpdateExperiment(ctx context.Context, id int, patch *domain.ExperimentPatch) (*domain.Experiment, error) {
	var out domain.Experiment
	if _, err := c.do(ctx, http.MethodPut, experimentPath(id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteExperiment removes an experiment and returns it
func (c *Client) DeleteExperiment(ctx context.Context, id int) (*domain.Experiment, error) {
	var out domain.Experiment
	if _, err := c.do(ctx, http.MethodDelete, experimentPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExperimentEmbed resolves the simulator iframe URL of an experiment
func (c *Client) ExperimentEmbed(ctx context.Context, id int) (*domain.ExperimentEmbed, error) {
	var out domain.ExperimentEmbed
	if _, err := c.do(ctx, http.MethodGet, experimentPath(id)+"/embed", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns public user summaries
func (c *Client) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	var out []domain.UserSummary
	_, err := c.do(ctx, http.MethodGet, "/users", nil, nil, &out)
	return out, err
}

// GetUser fetches the detail view of a user
func (c *Client) GetUser(ctx context.Context, id string) (*domain.UserDetail, error) {
	var out domain.UserDetail
	if _, err := c.do(ctx, http.MethodGet, userPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser registers a user
func (c *Client) CreateUser(ctx context.Context, input *domain.UserInput) (*domain.UserSummary, error) {
	var out domain.UserSummary
	if _, err := c.do(ctx, http.MethodPost, "/users", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies a partial update
func (c *Client) UpdateUser(ctx context.Context, id string, patch *domain.UserPatch) (*domain.UserDetail, error) {
	var out domain.UserDetail
	if _, err := c.do(ctx, http.MethodPut, userPath(id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a user and returns its summary
func (c *Client) DeleteUser(ctx context.Context, id string) (*domain.UserSummary, error) {
	var out domain.UserSummary
	if _, err := c.do(ctx, http.MethodDelete, userPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProgress returns progress records matching the filter. A nil filter lists everything.
func (c *Client) ListProgress(ctx context.Context, filter *domain.ProgressFilter) ([]domain.ProgressRecord, error) {
	query := url.Values{}
	if filter != nil {
		if filter.UserID != nil {
			query.Set("userId", *filter.UserID)
		}
		if filter.ExperimentID != nil {
			query.Set("experimentId", strconv.Itoa(*filter.ExperimentID))
		}
	}

	var out []domain.ProgressRecord
	_, err := c.do(ctx, http.MethodGet, "/progress", query, nil, &out)
	return out, err
}

// UpsertProgress creates or merges the record for (UserID, ExperimentID).
// created is true when the server made a new record.
func (c *Client) UpsertProgress(ctx context.Context, input *domain.ProgressInput) (rec *domain.ProgressRecord, created bool, err error) {
	var out domain.ProgressRecord
	status, err := c.do(ctx, http.MethodPost, "/progress", nil, input, &out)
	if err != nil {
		return nil, false, err
	}
	return &out, status == http.StatusCreated, nil
}

func experimentPath(id int) string {
	return "/experiments/" + strconv.Itoa(id)
}

func userPath(id string) string {
	return "/users/" + url.PathEscape(id)
}

// do sends one request and decodes a 2xx body into out. It returns the status code.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (int, error) {
	apiURL := c.config.Host + c.config.BasePath + path
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, bodyReader)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "circuitlab-go/"+Version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if jsonErr := json.Unmarshal(raw, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return resp.StatusCode, apiErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}
