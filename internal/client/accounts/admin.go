package accounts

import (
	"context"
	"net/http"
	"strconv"
)

const adminUsersPath = "/api/auth/admin/users/"

func adminUserPath(id int64) string {
	return adminUsersPath + strconv.FormatInt(id, 10) + "/"
}

func (c *Client) ListUsers(ctx context.Context) ([]AdminUser, error) {
	var out []AdminUser
	if err := c.send(ctx, http.MethodGet, adminUsersPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*AdminUser, error) {
	var out AdminUser
	if err := c.send(ctx, http.MethodGet, adminUserPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, u AdminUserWrite) (*AdminUser, error) {
	var out AdminUser
	if err := c.send(ctx, http.MethodPost, adminUsersPath, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies a partial update.
func (c *Client) UpdateUser(ctx context.Context, id int64, u AdminUserWrite) (*AdminUser, error) {
	var out AdminUser
	if err := c.send(ctx, http.MethodPatch, adminUserPath(id), u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a user. The backend refuses to delete the caller.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, adminUserPath(id), nil, nil)
}
