// Package transport provides the authenticated http.RoundTripper used by the
// resource API client. It injects the bearer token into outgoing requests
// and, on a 401, refreshes the session once and replays the request. Auth
// endpoints are passed through untouched so a failed login or refresh can
// never recurse into another refresh.
package transport

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
)

// TokenSource is the slice of the session manager the gatekeeper needs.
type TokenSource interface {
	// Token returns the current access token, empty when logged out.
	Token() string
	// Refresh obtains a new access token.
	Refresh(ctx context.Context) (string, error)
}

// skipPaths are the auth endpoints that must never carry a bearer token and
// never trigger a refresh-and-replay.
var skipPaths = []string{
	"/auth/login/",
	"/auth/register/",
	"/auth/refresh/",
	"/auth/password-reset/",
}

// Gatekeeper is an http.RoundTripper. Concurrent 401s share one refresh:
// the first caller performs it while the rest wait and replay with whatever
// token it produced.
type Gatekeeper struct {
	base   http.RoundTripper
	tokens TokenSource

	mu         sync.Mutex
	refreshing bool
	done       chan struct{}
	// latest holds the token produced by the most recent refresh, empty when
	// that refresh failed.
	latest string
}

func NewGatekeeper(base http.RoundTripper, tokens TokenSource) *Gatekeeper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Gatekeeper{base: base, tokens: tokens}
}

func (g *Gatekeeper) RoundTrip(req *http.Request) (*http.Response, error) {
	if isAuthEndpoint(req.URL.Path) {
		return g.base.RoundTrip(req)
	}

	token := g.tokens.Token()
	resp, err := g.roundTripWithToken(req, token)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	newToken, refreshed := g.refreshOnce(req.Context())
	if !refreshed {
		// refresh failed: hand the caller the original 401
		return resp, nil
	}

	replay, err := cloneForReplay(req)
	if err != nil {
		return resp, nil
	}
	drain(resp)

	return g.roundTripWithToken(replay, newToken)
}

func (g *Gatekeeper) roundTripWithToken(req *http.Request, token string) (*http.Response, error) {
	r := req.Clone(req.Context())
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return g.base.RoundTrip(r)
}

// refreshOnce performs a single-flight refresh. Exactly one concurrent caller
// hits the backend; the others block until it finishes and share its result.
func (g *Gatekeeper) refreshOnce(ctx context.Context) (string, bool) {
	g.mu.Lock()
	if g.refreshing {
		done := g.done
		g.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return "", false
		}

		g.mu.Lock()
		token := g.latest
		g.mu.Unlock()
		return token, token != ""
	}

	g.refreshing = true
	g.done = make(chan struct{})
	done := g.done
	g.mu.Unlock()

	token, err := g.tokens.Refresh(ctx)

	g.mu.Lock()
	g.refreshing = false
	if err != nil {
		token = ""
	}
	g.latest = token
	g.mu.Unlock()
	close(done)

	return token, token != ""
}

func isAuthEndpoint(path string) bool {
	for _, p := range skipPaths {
		if strings.HasSuffix(path, p) || strings.HasSuffix(path+"/", p) {
			return true
		}
	}
	return false
}

// cloneForReplay rebuilds the request so it can be sent a second time.
// Requests with a body must carry GetBody, which net/http sets for the
// common buffer types.
func cloneForReplay(req *http.Request) (*http.Request, error) {
	r := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return r, nil
	}
	if req.GetBody == nil {
		return nil, io.ErrUnexpectedEOF
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	r.Body = body
	return r, nil
}

func drain(resp *http.Response) {
	if resp.Body != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
	}
}
