package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/devmarket/internal/client/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{ err error }

func (f failingReader) Get(context.Context, string) ([]byte, error) { return nil, f.err }

func TestKeyFallback_PriorityOrder(t *testing.T) {
	tests := []struct {
		name   string
		stored map[string]string
		want   string
	}{
		{name: "nothing stored", stored: nil, want: ""},
		{name: "only token", stored: map[string]string{"token": "t3"}, want: "t3"},
		{name: "only access", stored: map[string]string{"access": "t2"}, want: "t2"},
		{name: "access beats token", stored: map[string]string{"access": "t2", "token": "t3"}, want: "t2"},
		{name: "access_token beats all", stored: map[string]string{"access_token": "t1", "access": "t2", "token": "t3"}, want: "t1"},
		{name: "empty access_token is skipped", stored: map[string]string{"access_token": "", "token": "t3"}, want: "t3"},
		{name: "unrelated keys ignored", stored: map[string]string{"refresh_token": "r"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := storage.NewMemoryRepository()
			for k, v := range tt.stored {
				require.NoError(t, repo.Set(ctx, k, []byte(v)))
			}

			got, err := NewKeyFallback(repo).Token(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyFallback_CustomKeys(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	require.NoError(t, repo.Set(ctx, "access_token", []byte("a")))
	require.NoError(t, repo.Set(ctx, "token", []byte("b")))

	p := NewKeyFallback(repo, "token", "access_token")
	assert.Equal(t, []string{"token", "access_token"}, p.Keys())

	got, err := p.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestKeyFallback_StoreErrorWrapped(t *testing.T) {
	boom := errors.New("database is locked")
	_, err := NewKeyFallback(failingReader{err: boom}).Token(context.Background())

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "read access_token")
}

func TestStatic(t *testing.T) {
	got, err := Static("fixed").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fixed", got)
}
