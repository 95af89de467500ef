// Package genie provides a typed Go client for the Databricks Genie
// Spaces API.
package genie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	apiVersion = "2.0"
	basePath   = "/api/" + apiVersion + "/genie/spaces"
)

// Environment variables consulted when no explicit credentials are
// given.
const (
	EnvHost  = "DATABRICKS_HOST"
	EnvToken = "DATABRICKS_TOKEN"
)

// DefaultTimeout bounds each API request unless WithTimeout or a custom
// HTTP client overrides it.
const DefaultTimeout = 30 * time.Second

// Client talks to the Genie Spaces API of a single Databricks
// workspace.
type Client struct {
	host       string
	token      string
	httpClient *http.Client
	ownsClient bool
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHost sets the workspace URL
// (e.g. "https://my-workspace.cloud.databricks.com").
func WithHost(host string) Option {
	return func(c *Client) { c.host = host }
}

// WithToken sets the personal access token sent as the bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient sets a custom HTTP client. The caller keeps ownership;
// Close will not touch it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
		c.ownsClient = false
	}
}

// WithLogger sets the logger used for request debug logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a client. Host and token fall back to DATABRICKS_HOST and
// DATABRICKS_TOKEN when not set explicitly; a value missing from both
// places is a *ConfigurationError. Trailing slashes on the host are
// trimmed.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		ownsClient: true,
		log:        slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}

	if c.host == "" {
		c.host = os.Getenv(EnvHost)
	}
	if c.token == "" {
		c.token = os.Getenv(EnvToken)
	}
	if c.host == "" {
		return nil, &ConfigurationError{Message: "host is required: pass WithHost or set " + EnvHost}
	}
	if c.token == "" {
		return nil, &ConfigurationError{Message: "token is required: pass WithToken or set " + EnvToken}
	}
	c.host = strings.TrimRight(c.host, "/")

	return c, nil
}

// Host returns the normalized workspace URL.
func (c *Client) Host() string { return c.host }

// Close releases idle connections held by the client-owned transport.
func (c *Client) Close() {
	if c.ownsClient {
		c.httpClient.CloseIdleConnections()
	}
}

// do executes an HTTP request and decodes the JSON response.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any, result any) error {
	u := c.host + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("genie api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("genie api response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		return parseAPIError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// get is a convenience wrapper for GET requests with query parameters.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, result)
}

// post is a convenience wrapper for POST requests.
func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, result)
}

// patch is a convenience wrapper for PATCH requests.
func (c *Client) patch(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, result)
}
