// Package api provides the HTTP client for the espresso-calibration
// service. It attaches bearer credentials to every request, normalizes
// the response envelope, and funnels authorization failures through a
// single process-wide hook.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const userAgent = "crema/0.1"

// defaultTimeout bounds a single request; list endpoints are small and
// the service is expected to answer quickly.
const defaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token for outgoing requests. An empty
// token means no Authorization header is sent.
type TokenSource interface {
	Token() string
}

// Client communicates with the calibration service.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource

	// onUnauthorized runs for every 401 response regardless of which
	// call produced it. The auth store makes the teardown single-fire.
	onUnauthorized func()
}

// NewClient creates a Client for the service at baseURL. tokens may be
// nil for an unauthenticated client.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
	}
}

// SetUnauthorizedHook registers the global 401 handler.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// SetHTTPClient replaces the underlying HTTP client. Tests use this to
// shorten timeouts.
func (c *Client) SetHTTPClient(httpc *http.Client) {
	c.httpc = httpc
}

// envelope is the optional wrapping the service applies to resources.
// Responses arrive either as the resource directly or as {"data": ...};
// unwrap normalizes both shapes here so callers never see the envelope.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func unwrap(body []byte) []byte {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil &&
		len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		return env.Data
	}
	return body
}

// errorBody is the shape of a non-2xx payload.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// do performs one request. body (if non-nil) is sent as JSON; out (if
// non-nil) receives the unwrapped JSON response.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshalling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: reading response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb errorBody
		if err := json.Unmarshal(data, &eb); err == nil {
			apiErr.Message = eb.Message
			apiErr.Fields = eb.Errors
		}
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(unwrap(data), out); err != nil {
			return fmt.Errorf("api: unmarshalling response: %w", err)
		}
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
