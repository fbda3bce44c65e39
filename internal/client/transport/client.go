package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/devmarket/internal/client/credentials"
	"github.com/dmitrijs2005/devmarket/internal/common"
	"github.com/dmitrijs2005/devmarket/internal/logging"
)

// Options configure a Client. BaseURL, Timeout and Credentials are required.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	Credentials credentials.Provider
	Logger      logging.Logger
	// Next is the underlying round tripper; http.DefaultTransport when nil.
	Next http.RoundTripper
}

// Client sends requests to one backend origin.
type Client struct {
	baseURL string
	http    *http.Client
}

// Request describes one backend call. Path is relative to the base URL and is
// used verbatim, trailing slash included.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        io.Reader
	ContentType string
}

// NewJSONRequest encodes payload as the request body. A nil payload produces a
// request without a body.
func NewJSONRequest(method, path string, payload any) (*Request, error) {
	r := &Request{Method: method, Path: path}
	if payload == nil {
		return r, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
	}
	r.Body = bytes.NewReader(b)
	r.ContentType = common.ContentTypeJSON
	return r, nil
}

func New(opts Options) (*Client, error) {
	if opts.Credentials == nil {
		return nil, fmt.Errorf("transport: credentials provider is required")
	}
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("transport: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("transport: base url %q must be absolute", opts.BaseURL)
	}

	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	next := opts.Next
	if next == nil {
		next = http.DefaultTransport
	}

	basePath := strings.TrimRight(u.Path, "/")

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http: &http.Client{
			Timeout: opts.Timeout,
			Transport: &authRoundTripper{
				next:     next,
				creds:    opts.Credentials,
				scheme:   u.Scheme,
				host:     u.Host,
				basePath: basePath,
				log:      log.With("component", "transport"),
			},
		},
	}, nil
}

// Do performs r and, on a 2xx response with a non-empty body, decodes the
// JSON body into out (if out is non-nil).
func (c *Client) Do(ctx context.Context, r *Request, out any) error {
	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, r.Body)
	if err != nil {
		return err
	}
	if r.ContentType != "" {
		req.Header.Set(common.ContentTypeHeaderName, r.ContentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     r.Method,
			Path:       r.Path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", r.Method, r.Path, err)
	}
	return nil
}

// Get issues a GET with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post sends payload as JSON; a nil payload sends no body.
func (c *Client) Post(ctx context.Context, path string, payload, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) Put(ctx context.Context, path string, payload, out any) error {
	return c.sendJSON(ctx, http.MethodPut, path, payload, out)
}

func (c *Client) Patch(ctx context.Context, path string, payload, out any) error {
	return c.sendJSON(ctx, http.MethodPatch, path, payload, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path}, nil)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out any) error {
	req, err := NewJSONRequest(method, path, payload)
	if err != nil {
		return err
	}
	return c.Do(ctx, req, out)
}
