package accounts

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/devmarket/internal/client/credentials"
	"github.com/dmitrijs2005/devmarket/internal/client/transport"
	"github.com/dmitrijs2005/devmarket/internal/testutil/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccounts(t *testing.T, srv *backend.Server) *Client {
	t.Helper()
	api, err := transport.New(transport.Options{
		BaseURL:     srv.URL,
		Timeout:     2 * time.Second,
		Credentials: credentials.Static("stored"),
	})
	require.NoError(t, err)
	return New(api)
}

func ptr[T any](v T) *T { return &v }

func TestRegister(t *testing.T) {
	srv := backend.New(t)
	srv.Reply(http.MethodPost, "/api/auth/register", http.StatusCreated, RegisterResponse{
		Message: "ok", User: User{ID: 1, Username: "alice"},
	})

	resp, err := newAccounts(t, srv).Register(context.Background(), RegisterRequest{
		Username: "alice", Password: "pw", Email: "a@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.User.ID)

	last := srv.Last(t)
	assert.Empty(t, last.Authorization)
	assert.JSONEq(t, `{"username":"alice","password":"pw","email":"a@example.com"}`, string(last.Body))
}

func TestLoginAndRefresh_NoCredential(t *testing.T) {
	srv := backend.New(t)
	srv.Reply(http.MethodPost, "/api/auth/login", http.StatusOK, LoginResponse{
		Access: "A", Refresh: "R", User: User{Username: "alice", Role: "user"},
	})
	srv.Reply(http.MethodPost, "/api/auth/refresh", http.StatusOK, RefreshResponse{Access: "A2"})

	c := newAccounts(t, srv)
	ctx := context.Background()

	login, err := c.Login(ctx, LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "A", login.Access)
	assert.Equal(t, "R", login.Refresh)
	assert.Empty(t, srv.Last(t).Authorization)

	ref, err := c.Refresh(ctx, "R")
	require.NoError(t, err)
	assert.Equal(t, "A2", ref.Access)
	assert.Empty(t, ref.Refresh)
	assert.Empty(t, srv.Last(t).Authorization)
	assert.JSONEq(t, `{"refresh":"R"}`, string(srv.Last(t).Body))
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := backend.New(t)
	srv.Reply(http.MethodPost, "/api/auth/login", http.StatusUnauthorized, map[string]string{"detail": "No active account"})

	_, err := newAccounts(t, srv).Login(context.Background(), LoginRequest{Username: "a", Password: "b"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, transport.ErrUnauthorized))
}

func TestMeAndUpdateMe(t *testing.T) {
	srv := backend.New(t)
	srv.Reply(http.MethodGet, "/api/auth/me", http.StatusOK, Profile{ID: 1, Username: "alice", Balance: "10.00", CreditScore: 100})
	srv.Reply(http.MethodPut, "/api/auth/me", http.StatusOK, Profile{ID: 1, Username: "alice", Nickname: "Al"})

	c := newAccounts(t, srv)
	ctx := context.Background()

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10.00", me.Balance)
	assert.Equal(t, "Bearer stored", srv.Last(t).Authorization)
	assert.Empty(t, srv.Last(t).Body)

	upd, err := c.UpdateMe(ctx, ProfileUpdate{Nickname: ptr("Al")})
	require.NoError(t, err)
	assert.Equal(t, "Al", upd.Nickname)
	assert.JSONEq(t, `{"nickname":"Al"}`, string(srv.Last(t).Body))
}

func TestLogout(t *testing.T) {
	srv := backend.New(t)
	srv.Reply(http.MethodPost, "/api/auth/logout", http.StatusResetContent, nil)

	require.NoError(t, newAccounts(t, srv).Logout(context.Background(), "R"))
	last := srv.Last(t)
	assert.Equal(t, "Bearer stored", last.Authorization)
	assert.JSONEq(t, `{"refresh":"R"}`, string(last.Body))
}

func TestAdminUsers(t *testing.T) {
	srv := backend.New(t)
	srv.Reply(http.MethodGet, "/api/auth/admin/users/", http.StatusOK, []AdminUser{
		{Profile: Profile{ID: 2, Username: "bob", Role: "user"}, IsActive: true},
	})
	srv.Reply(http.MethodGet, "/api/auth/admin/users/2/", http.StatusOK, AdminUser{Profile: Profile{ID: 2, Username: "bob"}})
	srv.Reply(http.MethodPost, "/api/auth/admin/users/", http.StatusCreated, AdminUser{Profile: Profile{ID: 3, Username: "carol"}})
	srv.Reply(http.MethodPatch, "/api/auth/admin/users/3/", http.StatusOK, AdminUser{Profile: Profile{ID: 3, Role: "admin"}})
	srv.Reply(http.MethodDelete, "/api/auth/admin/users/3/", http.StatusNoContent, nil)

	c := newAccounts(t, srv)
	ctx := context.Background()

	list, err := c.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bob", list[0].Username)
	assert.True(t, list[0].IsActive)

	got, err := c.GetUser(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)

	created, err := c.CreateUser(ctx, AdminUserWrite{Username: ptr("carol"), Password: ptr("pw")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.JSONEq(t, `{"username":"carol","password":"pw"}`, string(srv.Last(t).Body))

	updated, err := c.UpdateUser(ctx, 3, AdminUserWrite{Role: ptr("admin"), IsActive: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "admin", updated.Role)
	assert.Equal(t, http.MethodPatch, srv.Last(t).Method)
	assert.JSONEq(t, `{"role":"admin","is_active":false}`, string(srv.Last(t).Body))

	require.NoError(t, c.DeleteUser(ctx, 3))
	assert.Equal(t, http.MethodDelete, srv.Last(t).Method)
	assert.Equal(t, "/api/auth/admin/users/3/", srv.Last(t).Path)
}

func TestAdminUsers_Forbidden(t *testing.T) {
	srv := backend.New(t)
	srv.Reply(http.MethodGet, "/api/auth/admin/users/", http.StatusForbidden, map[string]string{"detail": "forbidden"})

	_, err := newAccounts(t, srv).ListUsers(context.Background())
	assert.ErrorIs(t, err, transport.ErrUnauthorized)
}
