// Package authapi talks to the remote authentication service. The service is
// a black box reached over two JSON endpoints; this package only builds the
// requests and decodes whatever comes back.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Endpoint paths relative to the base URL.
const (
	LoginPath    = "/auth/login"
	RegisterPath = "/user/register"
)

// ErrTransport is wrapped by every failure where no usable response arrived:
// the request could not be sent, the connection failed, or the body was not JSON.
var ErrTransport = errors.New("auth service unreachable")

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /user/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the decoded reply to a login call.
type LoginResponse struct {
	OK         bool   `json:"-"`
	StatusCode int    `json:"-"`
	Token      string `json:"token"`
	Message    string `json:"message"`
}

// Authenticated reports whether the call succeeded and issued a token.
func (r *LoginResponse) Authenticated() bool {
	return r != nil && r.OK && r.Token != ""
}

// RegisterResponse is the decoded reply to a registration call. ID holds the
// raw JSON value, which may be a string, a number or an object.
type RegisterResponse struct {
	OK         bool            `json:"-"`
	StatusCode int             `json:"-"`
	ID         json.RawMessage `json:"id"`
	Message    string          `json:"message"`
}

// Created reports whether the call succeeded and returned a truthy account
// id: a non-empty string, a non-zero number, true, or any object or array.
func (r *RegisterResponse) Created() bool {
	return r != nil && r.OK && truthy(r.ID)
}

// AccountID returns the id in string form. Strings are unquoted, anything
// else is returned as its JSON text.
func (r *RegisterResponse) AccountID() string {
	if r == nil || len(r.ID) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.ID, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(r.ID))
}

func truthy(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}

// Service is the contract the auth workflows depend on.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

// Client is the HTTP implementation of Service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each call. Zero leaves calls unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a Client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Login posts the credentials to the login endpoint.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	status, err := c.post(ctx, LoginPath, req, &out)
	if err != nil {
		return nil, err
	}
	out.StatusCode = status
	out.OK = isOK(status)
	return &out, nil
}

// Register posts the new account to the registration endpoint.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	status, err := c.post(ctx, RegisterPath, req, &out)
	if err != nil {
		return nil, err
	}
	out.StatusCode = status
	out.OK = isOK(status)
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to marshal request: %v", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read response: %v", ErrTransport, err)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return 0, fmt.Errorf("%w: empty response (status %d)", ErrTransport, resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return 0, fmt.Errorf("%w: malformed response (status %d): %v", ErrTransport, resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}

func isOK(status int) bool {
	return status >= 200 && status < 300
}
