package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/clouddevops/devopsapp/pkg/types"
)

// Client is an HTTP client for the message backend.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new message backend client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// doRequest performs an HTTP request with API key authentication.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}

	return resp, nil
}

// decode checks the status code and decodes a JSON response into out.
func decode(resp *http.Response, want int, out interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		var apiErr types.APIError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			if apiErr.Details != "" {
				return fmt.Errorf("API error (status %d): %s: %s", resp.StatusCode, apiErr.Error, apiErr.Details)
			}
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Health checks the backend health endpoint.
func (c *Client) Health(ctx context.Context) (*types.Health, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}

	var h types.Health
	if err := decode(resp, http.StatusOK, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// ListMessages lists all stored messages.
func (c *Client) ListMessages(ctx context.Context) ([]types.Message, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/message", nil)
	if err != nil {
		return nil, err
	}

	var list types.MessageList
	if err := decode(resp, http.StatusOK, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// SendMessage stores a new message and returns the saved item.
func (c *Client) SendMessage(ctx context.Context, text string) (*types.Message, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/message", types.MessageRequest{Text: text})
	if err != nil {
		return nil, err
	}

	var created types.MessageCreated
	if err := decode(resp, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created.Item, nil
}
