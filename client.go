package element

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the ELEMENT API base URL.
	DefaultBaseURL = "https://element-iot.com"

	// DefaultTimeout is the default HTTP request timeout. Set it to 0 via
	// WithTimeout to disable client-side timeouts entirely.
	DefaultTimeout = 30 * time.Second

	// apiPrefix is the versioned path prefix for all REST endpoints.
	apiPrefix = "/api/v1"
)

// Client is an ELEMENT API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rateLimiter

	// Initial rate limit state, applied when the limiter is built.
	initialRemaining int
	initialReset     time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL for the API. The URL must use an
// http or https scheme; NewClient fails otherwise.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP request timeout.
// This option can be applied in any order relative to other options.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// WithLogger configures a structured logger for the client.
// When set, the client logs requests, responses and rate limit state.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the assumed rate limit state used before the first
// response has been observed (default: 50 remaining, 5s reset).
func WithRateLimit(remaining int, reset time.Duration) Option {
	return func(c *Client) {
		c.initialRemaining = remaining
		c.initialReset = reset
	}
}

// NewClient creates a new ELEMENT API client.
// Returns ErrEmptyAPIKey if apiKey is empty and ErrInvalidBaseURL if a
// custom base URL does not use an http or https scheme.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				DisableKeepAlives:   false,
			},
		},
		initialRemaining: DefaultRateLimitRemaining,
		initialReset:     DefaultRateLimitReset,
	}

	for _, opt := range opts {
		opt(c)
	}

	if !strings.HasPrefix(c.baseURL, "http://") && !strings.HasPrefix(c.baseURL, "https://") {
		return nil, ErrInvalidBaseURL
	}

	c.limiter = newRateLimiter(c.initialRemaining, c.initialReset, c.logger)

	return c, nil
}

// LastRateLimit returns the most recently observed rate limit state.
// Before any response has arrived it reflects the configured defaults.
func (c *Client) LastRateLimit() RateLimitInfo {
	return c.limiter.snapshot()
}

// do performs an HTTP request and returns the response body. Every request
// leaves through here: the API key is injected as the auth query parameter
// (overwriting any caller-supplied value), the rate limiter gates the send,
// and the response's rate limit headers are observed before errors are
// mapped. Transport errors propagate unchanged; there are no retries.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("auth", c.apiKey)
	fullURL := c.baseURL + path + "?" + query.Encode()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.limiter.gate(ctx); err != nil {
		return nil, err
	}

	c.logRequest(ctx, method, path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logResponse(ctx, method, path, 0, time.Since(start), err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.limiter.observe(resp.Header)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logResponse(ctx, method, path, resp.StatusCode, time.Since(start), nil)

	if resp.StatusCode >= 400 {
		return nil, c.handleError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// handleError converts HTTP error responses to appropriate errors.
func (c *Client) handleError(statusCode int, body []byte) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		// Try to extract an error message from the response
		var errResp struct {
			Errors  json.RawMessage `json:"errors"`
			Message string          `json:"message"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
			return &APIError{
				StatusCode: statusCode,
				Message:    errResp.Message,
			}
		}
		return &APIError{
			StatusCode: statusCode,
			Message:    string(body),
		}
	}
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// post performs a POST request.
func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// put performs a PUT request.
func (c *Client) put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// delete performs a DELETE request.
func (c *Client) delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
