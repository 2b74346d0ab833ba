package reeve

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Client is the entry point for the Reeve API. It owns one logical
// session (lazily opened, idempotently closed) and exposes the resource
// services bound to it.
type Client struct {
	baseURL  string
	username string
	password string

	httpClient *http.Client
	timeout    time.Duration
	logger     zerolog.Logger

	mu      sync.Mutex
	apiKey  string
	session *http.Client

	// Auth handles authentication operations.
	Auth *AuthService
	// Person handles person management operations.
	Person *PersonService
	// Face handles face enrollment, recognition and verification.
	Face *FaceService
	// Subject handles face-to-face verification.
	Subject *SubjectService
}

// NewClient creates a new Reeve client. Authentication is configured
// through WithAPIKey or WithCredentials; an explicit API key always takes
// precedence and disables the automatic login performed by Connect.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("reeve API URL is required")
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     options.apiKey,
		username:   options.username,
		password:   options.password,
		httpClient: options.httpClient,
		timeout:    options.timeout,
		logger:     options.logger,
	}

	client.Auth = &AuthService{client: client}
	client.Person = &PersonService{client: client}
	client.Face = &FaceService{client: client}
	client.Subject = &SubjectService{client: client}

	return client, nil
}

// Connect opens the session and performs the startup login when
// credentials were supplied without an explicit API key. The returned
// token replaces the credential and the session is reopened so the new
// Authorization header applies to every subsequent request. Calling
// Connect on an open client is a no-op apart from that login check.
func (c *Client) Connect(ctx context.Context) error {
	c.openSession()

	c.mu.Lock()
	needLogin := c.apiKey == "" && c.username != ""
	c.mu.Unlock()

	if !needLogin {
		return nil
	}

	login, err := c.Auth.Login(ctx, c.username, c.password)
	if err != nil {
		return fmt.Errorf("startup login failed: %w", err)
	}

	c.logger.Debug().Str("username", c.username).Msg("Logged in, rotating session token")
	c.SetAPIKey(login.Token)
	return nil
}

// Close releases the session. Closing an already-closed client is a
// no-op. The client remains usable: any later request reopens the
// session.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil
	}
	c.session.CloseIdleConnections()
	c.session = nil
	return nil
}

// SetAPIKey replaces the bearer credential. An open session is dropped
// and reopened so the new token takes effect on all following requests.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.apiKey = apiKey
	if c.session != nil {
		c.session.CloseIdleConnections()
		c.session = c.newSession()
	}
}

// APIKey returns the bearer credential currently in effect.
func (c *Client) APIKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiKey
}

func (c *Client) openSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		c.session = c.newSession()
	}
}

func (c *Client) newSession() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{Timeout: c.timeout}
}

func (c *Client) currentSession() (*http.Client, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		c.session = c.newSession()
	}
	return c.session, c.apiKey
}

// Get performs a GET request against the given endpoint.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (*APIResponse, error) {
	return c.do(ctx, http.MethodGet, endpoint, params, nil, nil, nil)
}

// Post performs a POST request with a JSON body. A nil body sends an
// empty request.
func (c *Client) Post(ctx context.Context, endpoint string, jsonBody any) (*APIResponse, error) {
	return c.do(ctx, http.MethodPost, endpoint, nil, jsonBody, nil, nil)
}

// PostForm performs a POST request with a multipart body.
func (c *Client) PostForm(ctx context.Context, endpoint string, form *Form) (*APIResponse, error) {
	return c.do(ctx, http.MethodPost, endpoint, nil, nil, form, nil)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, jsonBody any) (*APIResponse, error) {
	return c.do(ctx, http.MethodPut, endpoint, nil, jsonBody, nil, nil)
}

// Delete performs a DELETE request against the given endpoint.
func (c *Client) Delete(ctx context.Context, endpoint string, params url.Values) (*APIResponse, error) {
	return c.do(ctx, http.MethodDelete, endpoint, params, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, jsonBody any, form *Form, headers http.Header) (*APIResponse, error) {
	requestURL := c.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case form != nil:
		encoded, formType, err := form.encode()
		if err != nil {
			return nil, fmt.Errorf("failed to encode form: %w", err)
		}
		body = encoded
		contentType = formType
	case jsonBody != nil:
		encoded, err := json.Marshal(jsonBody)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	session, apiKey := c.currentSession()
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Msg("Reeve API request")

	resp, err := session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return c.classifyResponse(resp.StatusCode, raw)
}

// classifyResponse turns a raw HTTP response into a decoded envelope or a
// typed error. Bodies that are not valid JSON never fail outright; they
// are captured as an error payload and run through the same path.
func (c *Client) classifyResponse(status int, raw []byte) (*APIResponse, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		data = map[string]any{"error": strings.TrimSpace(string(raw))}
	}

	payload, _ := data.(map[string]any)

	if status >= 400 {
		errData := any(fmt.Sprintf("HTTP %d error", status))
		if payload != nil && payload["error"] != nil {
			errData = payload["error"]
		}
		message := flattenErrorPayload(errData)

		switch status {
		case http.StatusUnauthorized:
			return nil, newAuthenticationError(message, status, payload)
		case http.StatusBadRequest:
			return nil, newValidationError(message, status, payload)
		case http.StatusNotFound:
			return nil, newNotFoundError(message, status, payload)
		case http.StatusConflict:
			return nil, newConflictError(message, status, payload)
		default:
			return nil, newServerError(message, status, payload)
		}
	}

	// The API can signal failure in-band on a 2xx status.
	if payload != nil && isTruthy(payload["error"]) {
		return nil, &APIError{
			Message:    flattenErrorPayload(payload["error"]),
			StatusCode: status,
			Response:   payload,
		}
	}

	if payload == nil {
		// Malformed success body that is not an envelope object.
		return &APIResponse{Success: true, Result: data}, nil
	}
	return envelopeFromMap(payload), nil
}

// isTruthy mirrors the API's loose notion of a populated error field:
// null, empty strings, zero numbers, false and empty collections all
// count as absent.
func isTruthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	case map[string]any:
		return len(val) > 0
	case []any:
		return len(val) > 0
	default:
		return true
	}
}
