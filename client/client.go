package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"viralengine/config"
	"viralengine/types"
)

// Client is a thin HTTP client for the Viral Engine generation API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client. An empty baseURL falls back to the
// local development server.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListVoices fetches the voice catalog.
func (c *Client) ListVoices(ctx context.Context) ([]types.Voice, error) {
	var voices []types.Voice
	if err := c.doJSONRequest(ctx, http.MethodGet, "/api/voices", nil, &voices); err != nil {
		return nil, &types.TransportError{Op: "list voices", Err: err}
	}
	return voices, nil
}

// Submit starts a generation job. The returned status carries the project id
// that identifies the job for the rest of its life.
func (c *Client) Submit(ctx context.Context, req types.GenerationRequest) (*types.ProjectStatus, error) {
	var status types.ProjectStatus
	if err := c.doJSONRequest(ctx, http.MethodPost, "/api/generate", req, &status); err != nil {
		return nil, &types.TransportError{Op: "submit generation", Err: err}
	}
	return &status, nil
}

// FetchStatus retrieves the current status of a project. The response's
// project id is not cross-checked against the requested one.
func (c *Client) FetchStatus(ctx context.Context, projectID string) (*types.ProjectStatus, error) {
	var status types.ProjectStatus
	path := "/api/status/" + url.PathEscape(projectID)
	if err := c.doJSONRequest(ctx, http.MethodGet, path, nil, &status); err != nil {
		return nil, &types.TransportError{Op: "fetch status", Err: err}
	}
	return &status, nil
}
