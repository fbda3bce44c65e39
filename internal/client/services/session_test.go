package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/devmarket/internal/client/accounts"
	"github.com/dmitrijs2005/devmarket/internal/client/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func putValue(t *testing.T, db *sql.DB, k, v string) {
	t.Helper()
	require.NoError(t, storage.NewSQLiteRepository(db).Set(context.Background(), k, []byte(v)))
}

func getValue(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	v, err := storage.NewSQLiteRepository(db).Get(context.Background(), k)
	require.NoError(t, err)
	return v
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return s
}

// ---- fake accounts API ----

type fakeAccounts struct {
	LoginResp *accounts.LoginResponse
	LoginErr  error
	LastLogin accounts.LoginRequest

	RefreshResp *accounts.RefreshResponse
	RefreshErr  error
	LastRefresh string

	LogoutErr    error
	LogoutCalls  int
	LastLogoutRT string
}

func (f *fakeAccounts) Login(_ context.Context, req accounts.LoginRequest) (*accounts.LoginResponse, error) {
	f.LastLogin = req
	return f.LoginResp, f.LoginErr
}

func (f *fakeAccounts) Refresh(_ context.Context, refresh string) (*accounts.RefreshResponse, error) {
	f.LastRefresh = refresh
	return f.RefreshResp, f.RefreshErr
}

func (f *fakeAccounts) Logout(_ context.Context, refresh string) error {
	f.LogoutCalls++
	f.LastLogoutRT = refresh
	return f.LogoutErr
}

// ---- tests ----

func TestSession_LoginStoresTokens(t *testing.T) {
	db := setupDB(t)
	api := &fakeAccounts{LoginResp: &accounts.LoginResponse{
		Access: "A1", Refresh: "R1", User: accounts.User{ID: 5, Username: "alice"},
	}}
	svc := NewSessionService(api, db, nil, nil)

	user, err := svc.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.Equal(t, accounts.LoginRequest{Username: "alice", Password: "pw"}, api.LastLogin)

	assert.Equal(t, []byte("A1"), getValue(t, db, "access_token"))
	assert.Equal(t, []byte("R1"), getValue(t, db, "refresh_token"))
	assert.Equal(t, []byte("alice"), getValue(t, db, "username"))

	ok, err := svc.LoggedIn(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSession_LoginRemoteErrorStoresNothing(t *testing.T) {
	db := setupDB(t)
	boom := errors.New("401")
	svc := NewSessionService(&fakeAccounts{LoginErr: boom}, db, nil, nil)

	_, err := svc.Login(context.Background(), "alice", "bad")
	require.ErrorIs(t, err, boom)
	assert.Nil(t, getValue(t, db, "access_token"))
	assert.Nil(t, getValue(t, db, "refresh_token"))
}

func TestSession_LoginUsesFirstConfiguredKey(t *testing.T) {
	db := setupDB(t)
	api := &fakeAccounts{LoginResp: &accounts.LoginResponse{Access: "A1", Refresh: "R1"}}
	svc := NewSessionService(api, db, []string{"token", "access_token"}, nil)

	_, err := svc.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, []byte("A1"), getValue(t, db, "token"))
	assert.Nil(t, getValue(t, db, "access_token"))
}

func TestSession_Refresh(t *testing.T) {
	db := setupDB(t)
	putValue(t, db, "access_token", "old")
	putValue(t, db, "refresh_token", "R1")

	api := &fakeAccounts{RefreshResp: &accounts.RefreshResponse{Access: "new"}}
	svc := NewSessionService(api, db, nil, nil)

	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, "R1", api.LastRefresh)
	assert.Equal(t, []byte("new"), getValue(t, db, "access_token"))
	assert.Equal(t, []byte("R1"), getValue(t, db, "refresh_token"))

	api.RefreshResp = &accounts.RefreshResponse{Access: "newer", Refresh: "R2"}
	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, []byte("newer"), getValue(t, db, "access_token"))
	assert.Equal(t, []byte("R2"), getValue(t, db, "refresh_token"))
}

func TestSession_RefreshWithoutToken(t *testing.T) {
	db := setupDB(t)
	api := &fakeAccounts{}
	svc := NewSessionService(api, db, nil, nil)

	err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNoRefreshKey)
	assert.Empty(t, api.LastRefresh)
}

func TestSession_RefreshRemoteErrorKeepsOldToken(t *testing.T) {
	db := setupDB(t)
	putValue(t, db, "access_token", "old")
	putValue(t, db, "refresh_token", "R1")

	boom := errors.New("token is blacklisted")
	svc := NewSessionService(&fakeAccounts{RefreshErr: boom}, db, nil, nil)

	require.ErrorIs(t, svc.Refresh(context.Background()), boom)
	assert.Equal(t, []byte("old"), getValue(t, db, "access_token"))
}

func TestSession_LogoutClearsAllTokenKeys(t *testing.T) {
	db := setupDB(t)
	for _, k := range []string{"access_token", "access", "token", "refresh_token", "username"} {
		putValue(t, db, k, "v-"+k)
	}
	putValue(t, db, "unrelated", "keep")

	api := &fakeAccounts{}
	svc := NewSessionService(api, db, nil, nil)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, 1, api.LogoutCalls)
	assert.Equal(t, "v-refresh_token", api.LastLogoutRT)

	for _, k := range []string{"access_token", "access", "token", "refresh_token", "username"} {
		assert.Nil(t, getValue(t, db, k), k)
	}
	assert.Equal(t, []byte("keep"), getValue(t, db, "unrelated"))

	ok, err := svc.LoggedIn(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSession_LogoutRemoteFailureStillClears(t *testing.T) {
	db := setupDB(t)
	putValue(t, db, "access_token", "A")
	putValue(t, db, "refresh_token", "R")

	boom := errors.New("backend down")
	svc := NewSessionService(&fakeAccounts{LogoutErr: boom}, db, nil, nil)

	err := svc.Logout(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Nil(t, getValue(t, db, "access_token"))
	assert.Nil(t, getValue(t, db, "refresh_token"))
}

func TestSession_LogoutWithoutRefreshSkipsRemote(t *testing.T) {
	db := setupDB(t)
	putValue(t, db, "access", "legacy")

	api := &fakeAccounts{}
	svc := NewSessionService(api, db, nil, nil)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Zero(t, api.LogoutCalls)
	assert.Nil(t, getValue(t, db, "access"))
}

func TestSession_LogoutClosedDB(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	api := &fakeAccounts{}
	err := NewSessionService(api, db, nil, nil).Logout(context.Background())
	require.Error(t, err)
	assert.Zero(t, api.LogoutCalls)
}

func TestSession_WhoAmI(t *testing.T) {
	db := setupDB(t)
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	putValue(t, db, "access", signedToken(t, jwt.MapClaims{
		"user_id": 7, "username": "alice", "role": "admin", "exp": exp.Unix(),
	}))

	id, err := NewSessionService(&fakeAccounts{}, db, nil, nil).WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), id.UserID)
	assert.Equal(t, "alice", id.Username)
	assert.Equal(t, "admin", id.Role)
	assert.True(t, exp.Equal(id.ExpiresAt))
	assert.False(t, id.Expired(time.Now()))
	assert.True(t, id.Expired(exp.Add(time.Minute)))
}

func TestSession_WhoAmIExpiredTokenStillDecodes(t *testing.T) {
	db := setupDB(t)
	putValue(t, db, "access_token", signedToken(t, jwt.MapClaims{
		"username": "bob", "exp": time.Now().Add(-time.Hour).Unix(),
	}))

	id, err := NewSessionService(&fakeAccounts{}, db, nil, nil).WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bob", id.Username)
	assert.True(t, id.Expired(time.Now()))
}

func TestSession_WhoAmIErrors(t *testing.T) {
	db := setupDB(t)
	svc := NewSessionService(&fakeAccounts{}, db, nil, nil)

	_, err := svc.WhoAmI(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	putValue(t, db, "access_token", "not-a-jwt")
	_, err = svc.WhoAmI(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode access token")
}
