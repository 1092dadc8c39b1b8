package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/user/cafe-notion-service/internal/repository"
	"github.com/user/cafe-notion-service/pkg/config"
)

const defaultBaseURL = "https://api.notion.com"

// Client talks to the destination knowledge-base API. A zero-value token or
// database id is a precondition failure reported before any network call.
type Client struct {
	cfg        *config.Config
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:        cfg,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
}

// checkConfig reports missing required configuration by name.
func (c *Client) checkConfig() error {
	var missing []string
	if c.cfg.NotionToken == "" {
		missing = append(missing, "NOTION_TOKEN")
	}
	if c.cfg.NotionDatabaseID == "" {
		missing = append(missing, "NOTION_DATABASE_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", repository.ErrDestinationConfigMissing, strings.Join(missing, ", "))
	}
	return nil
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.cfg.NotionToken)
	req.Header.Set("Notion-Version", c.cfg.NotionVersion)
}

// doJSON issues one JSON request and decodes the response into out. A
// non-success status is returned as a DestinationAPIError carrying the
// upstream status and payload.
func (c *Client) doJSON(ctx context.Context, method, url string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	c.setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("destination request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// parseAPIError builds a typed error from a non-2xx response, tolerating
// bodies that are not valid JSON.
func parseAPIError(resp *http.Response) *repository.DestinationAPIError {
	apiErr := &repository.DestinationAPIError{
		StatusCode: resp.StatusCode,
		Code:       "NOTION_API_ERROR",
		Message:    "Notion API error",
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Code != "" {
			apiErr.Code = payload.Code
		}
		if payload.Message != "" {
			apiErr.Message = payload.Message
		}
	}
	return apiErr
}
