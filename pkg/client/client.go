// Package client is the typed Go client for the Cadence API. A Client
// owns one authenticated session; there is no ambient global auth
// state, callers pass the client wherever API access is needed.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/cadencehq/cadence-api/pkg/dto"
	"github.com/cadencehq/cadence-api/pkg/listview"
)

// Session is the authenticated state after a login: the token pair and
// the user it belongs to.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         dto.UserResponse
}

// HasRole reports whether the session's user holds one of the given
// roles. Comparison is case-insensitive.
func (s Session) HasRole(roles ...string) bool {
	for _, role := range roles {
		if strings.EqualFold(s.User.Role, role) {
			return true
		}
	}
	return false
}

type Client struct {
	http *resty.Client

	mu      sync.Mutex
	session Session
}

// New builds a client for a Cadence deployment, e.g.
// "https://cadence.example.edu".
func New(baseURL string) *Client {
	http := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/") + "/api/v1").
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{http: http}
}

// HTTP exposes the underlying resty client, carrying the base URL and
// the session's bearer token. List view controllers are built on it.
func (c *Client) HTTP() *resty.Client {
	return c.http
}

// Session returns a copy of the current session. The zero value means
// not logged in.
func (c *Client) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Login authenticates with username and password and stores the
// resulting session on the client.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	var tokens dto.TokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(dto.LoginRequest{Username: username, Password: password}).
		SetResult(&tokens).
		Post("/auth/login")
	if err != nil {
		return Session{}, fmt.Errorf("login request failed: %w", err)
	}
	if resp.IsError() {
		return Session{}, apiError(resp)
	}

	return c.storeSession(tokens), nil
}

// Refresh rotates the token pair using the stored refresh token.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.session.RefreshToken
	c.mu.Unlock()
	if refresh == "" {
		return fmt.Errorf("no session to refresh")
	}

	var tokens dto.TokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(dto.RefreshTokenRequest{RefreshToken: refresh}).
		SetResult(&tokens).
		Post("/auth/refresh")
	if err != nil {
		return fmt.Errorf("refresh request failed: %w", err)
	}
	if resp.IsError() {
		return apiError(resp)
	}

	c.storeSession(tokens)
	return nil
}

// Logout revokes the refresh token server-side and clears the session.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.session.RefreshToken
	c.session = Session{}
	c.mu.Unlock()
	c.http.SetAuthToken("")

	if refresh == "" {
		return nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(dto.RefreshTokenRequest{RefreshToken: refresh}).
		Post("/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var user dto.UserResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&user).
		Get("/users/me")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &user, nil
}

func (c *Client) storeSession(tokens dto.TokenResponse) Session {
	session := Session{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         tokens.User,
	}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
	c.http.SetAuthToken(tokens.AccessToken)

	return session
}

// apiError turns a non-2xx response into a listview.APIError carrying
// the server's message verbatim.
func apiError(resp *resty.Response) error {
	apiErr := &listview.APIError{StatusCode: resp.StatusCode()}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode())
	}
	return apiErr
}
