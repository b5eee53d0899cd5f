package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"docuchat/client/internal/model"
	"docuchat/client/internal/repository"
)

// TokenStore persists the bearer token between runs. The gateway is the
// only writer and the only reader; stores never touch the token directly.
// A missing token is reported as repository.ErrNotFound.
type TokenStore interface {
	SaveToken(ctx context.Context, token string) error
	LoadToken(ctx context.Context) (string, error)
	ClearToken(ctx context.Context) error
}

// Client is the single component that talks to the backend. One method per
// backend operation; every failure comes back as an *APIError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore

	mu            sync.Mutex
	onAuthExpired func()
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenStore) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
	}
}

// OnAuthExpired registers the process-wide hook fired whenever the server
// rejects the session (HTTP 401). The persisted token is already cleared
// when the hook runs; the hook's job is to force the UI back to login.
func (c *Client) OnAuthExpired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAuthExpired = fn
}

// HasSession reports whether a bearer token is persisted, without exposing
// its value. Session restore uses this to short-circuit before any network
// call.
func (c *Client) HasSession(ctx context.Context) bool {
	token, err := c.tokens.LoadToken(ctx)
	return err == nil && token != ""
}

type authResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user,omitempty"`
}

// SignUp registers a new account and persists the issued token.
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	payload := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/signup", payload, &resp); err != nil {
		return err
	}
	return c.storeToken(ctx, resp.Token)
}

// Login exchanges credentials for a bearer token and persists it. The
// caller fetches the user afterwards; authentication is only claimed once
// both steps succeed.
func (c *Client) Login(ctx context.Context, email, password string) error {
	payload := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", payload, &resp); err != nil {
		return err
	}
	return c.storeToken(ctx, resp.Token)
}

// Logout clears the persisted token first, then revokes the session on the
// server with the old credential. The revoke error is returned for logging
// but the local session is gone either way.
func (c *Client) Logout(ctx context.Context) error {
	token, err := c.tokens.LoadToken(ctx)
	if err != nil || token == "" {
		return nil
	}
	if err := c.tokens.ClearToken(ctx); err != nil {
		slog.Warn("Failed to clear persisted token on logout", "error", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/logout", nil)
	if err != nil {
		return fmt.Errorf("could not create logout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return normalizeError(resp)
	}
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	return nil
}

// CurrentUser fetches the identity record for the persisted session.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserRequest carries the mutable profile fields.
type UpdateUserRequest struct {
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// UpdateCurrentUser updates the profile and returns the fresh record.
func (c *Client) UpdateCurrentUser(ctx context.Context, req UpdateUserRequest) (*model.User, error) {
	var user model.User
	if err := c.doJSON(ctx, http.MethodPut, "/auth/me", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Health probes the backend. An error means the server is unreachable or
// reports itself unhealthy.
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) storeToken(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return &APIError{Status: 0, Message: "server returned an empty session token"}
	}
	if err := c.tokens.SaveToken(ctx, token); err != nil {
		return fmt.Errorf("could not persist session token: %w", err)
	}
	return nil
}

// doJSON issues a JSON request against path and decodes the response into
// out (which may be nil). The bearer token is attached when present, and a
// 401 triggers the global session teardown before the error is returned.
func (c *Client) doJSON(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("could not marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// do executes a prepared request: attaches the token, normalizes failures,
// handles 401 teardown, decodes the body.
func (c *Client) do(req *http.Request, out any) error {
	token, err := c.tokens.LoadToken(req.Context())
	if err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.expireSession(req.Context())
	}
	if resp.StatusCode >= 400 {
		return normalizeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "could not decode server response"}
	}
	return nil
}

// expireSession tears down the persisted session and fires the forced-login
// hook. Process-wide: it runs regardless of which store issued the call.
func (c *Client) expireSession(ctx context.Context) {
	if err := c.tokens.ClearToken(ctx); err != nil && err != repository.ErrNotFound {
		slog.Warn("Failed to clear token after authorization failure", "error", err)
	}
	c.mu.Lock()
	hook := c.onAuthExpired
	c.mu.Unlock()
	if hook != nil {
		hook()
	}
}
