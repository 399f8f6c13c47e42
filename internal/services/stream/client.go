package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"streamfetch/internal/services"
)

// Session is the opaque authentication context for the remote video API.
// Only this package reads its contents; everything above the transport
// treats it as a black box.
type Session struct {
	AccessToken string
	APIBaseURL  string
}

// Client issues authenticated requests against the video-hosting API and
// surfaces failures as status-coded errors for classification upstream.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a transport bound to the given session.
func New(session Session, opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(session.APIBaseURL)
	if baseURL == "" {
		return nil, errors.New("api base url required")
	}
	if strings.TrimSpace(session.AccessToken) == "" {
		return nil, errors.New("access token required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      session.AccessToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Request performs one API call and returns the raw response body. A
// non-2xx response becomes a StatusError carrying the HTTP status code.
func (c *Client) Request(ctx context.Context, path, method string) ([]byte, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, services.NewStatusError(resp.StatusCode,
			fmt.Errorf("%s %s (latency=%v)", method, path, latency))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}
