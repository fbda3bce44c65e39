// Package credentials supplies the bearer token attached to outgoing requests.
// Providers only read; writing and clearing tokens is the session service's
// job.
package credentials

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/devmarket/internal/common"
)

// Provider returns the current access token, or "" when none is stored.
// A missing token is not an error.
type Provider interface {
	Token(ctx context.Context) (string, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context) (string, error)

func (f ProviderFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// Static always returns token.
func Static(token string) Provider {
	return ProviderFunc(func(context.Context) (string, error) { return token, nil })
}

// Reader is the read half of storage.Repository.
type Reader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// KeyFallback looks the token up under several keys and returns the first
// non-empty value. The order of keys is the priority order.
type KeyFallback struct {
	store Reader
	keys  []string
}

// NewKeyFallback builds a provider over store. With no keys given it uses
// common.DefaultTokenKeys (access_token, access, token).
func NewKeyFallback(store Reader, keys ...string) *KeyFallback {
	if len(keys) == 0 {
		keys = common.DefaultTokenKeys()
	}
	return &KeyFallback{store: store, keys: append([]string(nil), keys...)}
}

// Keys returns the lookup order.
func (p *KeyFallback) Keys() []string {
	return append([]string(nil), p.keys...)
}

func (p *KeyFallback) Token(ctx context.Context) (string, error) {
	for _, key := range p.keys {
		v, err := p.store.Get(ctx, key)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", key, err)
		}
		if len(v) > 0 {
			return string(v), nil
		}
	}
	return "", nil
}
