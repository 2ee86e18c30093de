// Package apiclient talks to the flight-booking REST API. Every request carries
// the API key header and, when a session is signed in, the bearer token read
// from the session store at request time.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flightadmin/domain/contracts"
	"flightadmin/logging"
)

// DefaultTimeout matches the transport timeout the dashboard has always used.
const DefaultTimeout = 60 * time.Second

// DefaultAPIKeyHeader is the header the API key is sent in.
const DefaultAPIKeyHeader = "x-api-key"

// publicPaths never trigger the global sign-out on 401.
var publicPaths = []string{"/public/auth"}

// Config holds the connection settings of the remote API.
type Config struct {
	BaseURL      string        // e.g. https://api.example.com/api/v1
	APIKey       string        // key for the regular client
	AdminAPIKey  string        // key for system endpoints such as country listing
	APIKeyHeader string        // header name, x-api-key when empty
	Timeout      time.Duration // transport timeout, DefaultTimeout when zero
}

// Client performs authenticated JSON requests against the API.
type Client struct {
	baseURL      string
	apiKey       string
	adminAPIKey  string
	apiKeyHeader string
	tokens       contracts.TokenSource // read before every request, never cached
	httpClient   *http.Client
	logger       *logging.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// New creates a client that authenticates with cfg.APIKey.
func New(cfg Config, tokens contracts.TokenSource, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	header := cfg.APIKeyHeader
	if header == "" {
		header = DefaultAPIKeyHeader
	}

	c := &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		adminAPIKey:  cfg.AdminAPIKey,
		apiKeyHeader: header,
		tokens:       tokens,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logging.Default().WithComponent("api_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithAPIKey returns a copy of the client that sends key instead. An empty
// key keeps the current one. The token source is shared with the original.
func (c *Client) WithAPIKey(key string) *Client {
	cp := *c
	if key != "" {
		cp.apiKey = key
	}
	return &cp
}

// admin is the client used for system endpoints.
func (c *Client) admin() *Client {
	return c.WithAPIKey(c.adminAPIKey)
}

// do sends one request and returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(c.apiKeyHeader, c.apiKey)
	}

	token, err := c.accessToken(ctx, path)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithContext(ctx).APIError("Request failed", err, method, path)
		return nil, &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, Path: path, Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.WithContext(ctx).API("Request completed", method, path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	apiErr := classify(resp.StatusCode, path, decodeErrorMessages(data))
	c.logger.WithContext(ctx).APIError("Request rejected", apiErr, method, path, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized && !isPublicPath(path) && c.tokens != nil {
		if clearErr := c.tokens.Clear(ctx); clearErr != nil {
			c.logger.Security("Failed to clear session after 401", "error", clearErr)
		} else {
			c.logger.Security("Session cleared after 401", "path", path)
		}
	}
	return nil, apiErr
}

// accessToken reads the current token. A missing session sends the request
// unauthenticated; an expired one fails it as an AuthError without a round trip.
func (c *Client) accessToken(ctx context.Context, path string) (string, error) {
	if c.tokens == nil {
		return "", nil
	}
	token, err := c.tokens.AccessToken(ctx)
	switch {
	case err == nil:
		return token, nil
	case errors.Is(err, contracts.ErrNoSession), errors.Is(err, contracts.ErrSessionNotFound):
		return "", nil
	case errors.Is(err, contracts.ErrSessionExpired):
		return "", &AuthError{Path: path, Message: err.Error()}
	default:
		return "", fmt.Errorf("read access token: %w", err)
	}
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// getData performs a request and decodes the envelope's data into out.
func (c *Client) getData(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	body, err := c.do(ctx, method, path, query, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", path, err)
	}
	return nil
}

// create posts payload and returns the id of the created record, if the API sent one.
func (c *Client) create(ctx context.Context, path string, payload any) (string, error) {
	var created createdJSON
	if err := c.getData(ctx, http.MethodPost, path, nil, payload, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}
