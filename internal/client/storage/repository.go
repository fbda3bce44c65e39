// Package storage is the client-side persistent key-value store. It holds the
// access and refresh tokens and a few bits of session metadata, much like a
// browser's localStorage.
package storage

import (
	"context"
)

// Repository is a string-keyed byte store. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
