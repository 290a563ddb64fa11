// Package httpclient provides a configurable HTTP client for upstream APIs.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// HTTPClient defines the interface for HTTP client operations.
type HTTPClient interface {
	Get(ctx context.Context, path string, headers map[string]string) (*http.Response, error)
	Post(ctx context.Context, path string, data any, headers map[string]string) (*http.Response, error)
	Put(ctx context.Context, path string, data any, headers map[string]string) (*http.Response, error)
	Delete(ctx context.Context, path string, headers map[string]string) (*http.Response, error)
	Do(ctx context.Context, method, path string, body io.Reader, headers map[string]string) (*http.Response, error)
	BaseURL() string
	Timeout() time.Duration
}

// Client is an HTTP client with a base URL, default headers and a timeout.
type Client struct {
	client  *http.Client
	baseURL string
	headers map[string]string
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a new HTTP client with the provided options.
func New(opts ...Option) HTTPClient {
	client := &Client{
		client:  &http.Client{Timeout: 30 * time.Second},
		headers: make(map[string]string),
		timeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.client.Timeout = client.timeout
	if client.headers == nil {
		client.headers = make(map[string]string)
	}
	return client
}

// Get performs an HTTP GET request.
func (c *Client) Get(ctx context.Context, path string, headers map[string]string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, headers)
}

// Post performs an HTTP POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, data any, headers map[string]string) (*http.Response, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return c.Do(ctx, http.MethodPost, path, bytes.NewBuffer(body), headers)
}

// Put performs an HTTP PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, data any, headers map[string]string) (*http.Response, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return c.Do(ctx, http.MethodPut, path, bytes.NewBuffer(body), headers)
}

// Delete performs an HTTP DELETE request.
func (c *Client) Delete(ctx context.Context, path string, headers map[string]string) (*http.Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, headers)
}

// Do performs an HTTP request against baseURL+path with default and
// per-request headers applied.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, headers map[string]string) (*http.Response, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Default headers are immutable after construction, so this is safe
	// for concurrent use.
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if c.logger != nil {
		c.logger.Debug("HTTP request", "method", method, "url", url)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the configured request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}
