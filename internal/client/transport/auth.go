package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/devmarket/internal/client/credentials"
	"github.com/dmitrijs2005/devmarket/internal/common"
	"github.com/dmitrijs2005/devmarket/internal/logging"
	"github.com/google/uuid"
)

// publicAuthPrefixes never carry a credential, even when one is stored.
var publicAuthPrefixes = []string{
	"/api/auth/register",
	"/api/auth/login",
	"/api/auth/refresh",
}

// IsPublicAuthPath reports whether path (relative to the backend origin) is
// one of the credential-free authentication endpoints.
func IsPublicAuthPath(path string) bool {
	for _, prefix := range publicAuthPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// authRoundTripper attaches the bearer credential to requests bound for the
// backend origin. It keeps no state between requests.
type authRoundTripper struct {
	next     http.RoundTripper
	creds    credentials.Provider
	scheme   string
	host     string
	basePath string
	log      logging.Logger
}

// sameOrigin reports whether u points at the configured backend. Redirect
// hops to any other origin go out without a credential.
func (t *authRoundTripper) sameOrigin(u *url.URL) bool {
	return strings.EqualFold(u.Scheme, t.scheme) && strings.EqualFold(u.Host, t.host)
}

func (t *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	path := strings.TrimPrefix(req.URL.Path, t.basePath)

	attached := false
	if t.sameOrigin(req.URL) && !IsPublicAuthPath(path) {
		token, err := t.creds.Token(ctx)
		if err != nil {
			if req.Body != nil {
				_ = req.Body.Close()
			}
			return nil, fmt.Errorf("read credential: %w", err)
		}
		if token != "" {
			req = req.Clone(ctx)
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
			attached = true
		}
	}

	log := t.log.With("request_id", uuid.NewString(), "method", req.Method, "host", req.URL.Host, "path", path, "authenticated", attached)

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		log.Debug(ctx, "request failed", "duration", time.Since(start), "error", err)
		return nil, err
	}
	log.Debug(ctx, "request done", "status", resp.StatusCode, "duration", time.Since(start))
	return resp, nil
}
