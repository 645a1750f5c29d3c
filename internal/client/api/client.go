// Package api is a typed client for the Goal Buddy REST service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/productivity-app/backend/internal/client/session"
)

const maxResponseBytes = 1 << 20

// Config configures a Client.
type Config struct {
	// BaseURL is the service root, for example http://localhost:8080.
	BaseURL string
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client sends requests on behalf of one session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	logger     *slog.Logger
}

// NewClient creates a client bound to sess.
func NewClient(config Config, sess *session.Session) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}
	if sess == nil {
		return nil, fmt.Errorf("api: session is required")
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		session:    sess,
		logger:     logger,
	}, nil
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *session.Session { return c.session }

// Users returns the user and auth endpoints.
func (c *Client) Users() *Users { return &Users{client: c} }

// Goals returns the goal endpoints.
func (c *Client) Goals() *Goals { return &Goals{client: c} }

// Checkpoints returns the checkpoint endpoints.
func (c *Client) Checkpoints() *Checkpoints { return &Checkpoints{client: c} }

// Buddies returns the buddy request endpoints.
func (c *Client) Buddies() *Buddies { return &Buddies{client: c} }

// do sends one request and decodes a 2xx body into result.
//
// When authenticated is set, the token is read from the session together
// with its generation; a 401 then invalidates exactly that generation.
func (c *Client) do(ctx context.Context, method, path string, authenticated bool, requestBody, result any) error {
	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("api: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("api: creating request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	var generation uint64
	if authenticated {
		var token string
		token, generation = c.session.Snapshot()
		if token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return &Error{Kind: KindTransport, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		apiErr := &Error{
			Kind:    kindForStatus(response.StatusCode),
			Status:  response.StatusCode,
			Message: errorMessage(body),
		}
		if apiErr.Kind == KindUnauthorized && authenticated {
			if c.session.Invalidate(generation) {
				c.logger.Info("Session expired, token cleared", "method", method, "path", path)
			}
		}
		return apiErr
	}

	if result == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("api: decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// errorMessage reads "message", falling back to "error".
func errorMessage(body []byte) string {
	var wire struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &wire) != nil {
		return ""
	}
	if wire.Message != "" {
		return wire.Message
	}
	return wire.Error
}
