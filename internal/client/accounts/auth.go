package accounts

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/devmarket/internal/client/transport"
)

const (
	registerPath = "/api/auth/register"
	loginPath    = "/api/auth/login"
	refreshPath  = "/api/auth/refresh"
	mePath       = "/api/auth/me"
	logoutPath   = "/api/auth/logout"
)

// Doer sends one request; *transport.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, r *transport.Request, out any) error
}

type Client struct {
	api Doer
}

func New(api Doer) *Client {
	return &Client{api: api}
}

func (c *Client) send(ctx context.Context, method, path string, payload, out any) error {
	req, err := transport.NewJSONRequest(method, path, payload)
	if err != nil {
		return err
	}
	return c.api.Do(ctx, req, out)
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.send(ctx, http.MethodPost, registerPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for an access/refresh pair. Storing the pair is
// up to the caller.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.send(ctx, http.MethodPost, loginPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Refresh(ctx context.Context, refresh string) (*RefreshResponse, error) {
	var out RefreshResponse
	if err := c.send(ctx, http.MethodPost, refreshPath, map[string]string{"refresh": refresh}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.send(ctx, http.MethodGet, mePath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMe(ctx context.Context, upd ProfileUpdate) (*Profile, error) {
	var out Profile
	if err := c.send(ctx, http.MethodPut, mePath, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout blacklists refresh on the backend.
func (c *Client) Logout(ctx context.Context, refresh string) error {
	return c.send(ctx, http.MethodPost, logoutPath, map[string]string{"refresh": refresh}, nil)
}
