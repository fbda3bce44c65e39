package market

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/devmarket/internal/client/transport"
)

// ErrNoDraftKey is returned before any request is made when a draft
// operation gets an empty key.
var ErrNoDraftKey = errors.New("draft key is empty")

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

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	req, err := transport.NewJSONRequest(http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	return c.api.Do(ctx, req, out)
}
