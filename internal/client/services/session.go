// Package services contains the client's application services. They sit
// between the CLI and the HTTP API wrappers and own everything that touches
// the local store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/devmarket/internal/client/accounts"
	"github.com/dmitrijs2005/devmarket/internal/client/credentials"
	"github.com/dmitrijs2005/devmarket/internal/client/storage"
	"github.com/dmitrijs2005/devmarket/internal/common"
	"github.com/dmitrijs2005/devmarket/internal/dbx"
	"github.com/dmitrijs2005/devmarket/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrNoRefreshKey = errors.New("no refresh token stored")
)

// AccountsAPI is the part of accounts.Client the session service calls.
type AccountsAPI interface {
	Login(ctx context.Context, req accounts.LoginRequest) (*accounts.LoginResponse, error)
	Refresh(ctx context.Context, refresh string) (*accounts.RefreshResponse, error)
	Logout(ctx context.Context, refresh string) error
}

// Identity is what the stored access token says about its owner. It is read
// without checking the signature and is only good for display.
type Identity struct {
	UserID    int64
	Username  string
	Role      string
	ExpiresAt time.Time
}

// Expired reports whether the token's exp claim is in the past.
func (i *Identity) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// SessionService manages the tokens in the local store.
//
// Contract:
//   - Login: authenticate and persist access_token and refresh_token together.
//   - Refresh: trade the stored refresh token for a new access token.
//   - Logout: revoke remotely, then always wipe the local tokens.
//   - WhoAmI: decode the stored access token.
//   - LoggedIn: whether an access token is stored.
type SessionService interface {
	Login(ctx context.Context, username, password string) (*accounts.User, error)
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) (*Identity, error)
	LoggedIn(ctx context.Context) (bool, error)
}

type sessionService struct {
	api       AccountsAPI
	db        *sql.DB
	creds     *credentials.KeyFallback
	tokenKeys []string
	log       logging.Logger
}

// NewSessionService binds the service to the API, the store database and the
// ordered list of keys the access token may live under.
func NewSessionService(api AccountsAPI, db *sql.DB, tokenKeys []string, log logging.Logger) SessionService {
	if len(tokenKeys) == 0 {
		tokenKeys = common.DefaultTokenKeys()
	}
	if log == nil {
		log = logging.Discard()
	}
	return &sessionService{
		api:       api,
		db:        db,
		creds:     credentials.NewKeyFallback(storage.NewSQLiteRepository(db), tokenKeys...),
		tokenKeys: tokenKeys,
		log:       log.With("component", "session"),
	}
}

func (s *sessionService) repo() storage.Repository {
	return storage.NewSQLiteRepository(s.db)
}

func (s *sessionService) Login(ctx context.Context, username, password string) (*accounts.User, error) {
	resp, err := s.api.Login(ctx, accounts.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, s.tokenKeys[0], []byte(resp.Access)); err != nil {
			return err
		}
		if err := repo.Set(ctx, common.RefreshTokenKey, []byte(resp.Refresh)); err != nil {
			return err
		}
		return repo.Set(ctx, common.UsernameKey, []byte(username))
	})
	if err != nil {
		return nil, fmt.Errorf("save tokens: %w", err)
	}

	s.log.Info(ctx, "logged in", "username", username)
	user := resp.User
	return &user, nil
}

func (s *sessionService) Refresh(ctx context.Context) error {
	refresh, err := s.repo().Get(ctx, common.RefreshTokenKey)
	if err != nil {
		return fmt.Errorf("read refresh token: %w", err)
	}
	if len(refresh) == 0 {
		return ErrNoRefreshKey
	}

	resp, err := s.api.Refresh(ctx, string(refresh))
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, s.tokenKeys[0], []byte(resp.Access)); err != nil {
			return err
		}
		if resp.Refresh == "" {
			return nil
		}
		return repo.Set(ctx, common.RefreshTokenKey, []byte(resp.Refresh))
	})
	if err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}

	s.log.Debug(ctx, "access token refreshed", "rotated", resp.Refresh != "")
	return nil
}

// Logout returns the remote error, if any, but only after the local tokens
// are gone.
func (s *sessionService) Logout(ctx context.Context) error {
	var remoteErr error

	refresh, err := s.repo().Get(ctx, common.RefreshTokenKey)
	switch {
	case err != nil:
		remoteErr = fmt.Errorf("read refresh token: %w", err)
	case len(refresh) > 0:
		if err := s.api.Logout(ctx, string(refresh)); err != nil {
			remoteErr = fmt.Errorf("logout: %w", err)
			s.log.Warn(ctx, "remote logout failed, clearing local session anyway", "error", err)
		}
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteRepository(tx)
		keys := append([]string{common.RefreshTokenKey, common.UsernameKey}, s.tokenKeys...)
		for _, k := range keys {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Join(remoteErr, fmt.Errorf("clear tokens: %w", err))
	}

	s.log.Info(ctx, "logged out")
	return remoteErr
}

type accessClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (s *sessionService) WhoAmI(ctx context.Context) (*Identity, error) {
	token, err := s.creds.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	var claims accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("decode access token: %w", err)
	}

	id := &Identity{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

func (s *sessionService) LoggedIn(ctx context.Context) (bool, error) {
	token, err := s.creds.Token(ctx)
	if err != nil {
		return false, err
	}
	return token != "", nil
}
