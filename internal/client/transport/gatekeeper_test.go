package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeTokens struct {
	mu           sync.Mutex
	token        string
	refreshTo    string
	refreshErr   error
	refreshCalls int32
	refreshDelay time.Duration
}

func (f *fakeTokens) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeTokens) Refresh(ctx context.Context) (string, error) {
	atomic.AddInt32(&f.refreshCalls, 1)
	if f.refreshDelay > 0 {
		time.Sleep(f.refreshDelay)
	}
	if f.refreshErr != nil {
		return "", f.refreshErr
	}
	f.mu.Lock()
	f.token = f.refreshTo
	f.mu.Unlock()
	return f.refreshTo, nil
}

func TestGatekeeper_InjectsBearer(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewGatekeeper(nil, &fakeTokens{token: "a1"})}
	resp, err := client.Get(srv.URL + "/api/barrels/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "Bearer a1", got)
}

func TestGatekeeper_SkipsAuthEndpoints(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "a1"}
	client := &http.Client{Transport: NewGatekeeper(nil, tokens)}

	resp, err := client.Post(srv.URL+"/auth/login/", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Empty(t, got)
	// a 401 from an auth endpoint must not trigger a refresh
	require.Equal(t, int32(0), atomic.LoadInt32(&tokens.refreshCalls))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGatekeeper_RefreshAndReplayOn401(t *testing.T) {
	var tokens []string
	var bodies []string
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		tokens = append(tokens, r.Header.Get("Authorization"))
		bodies = append(bodies, string(body))
		first := len(tokens) == 1
		mu.Unlock()
		if first {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	ts := &fakeTokens{token: "a1", refreshTo: "a2"}
	client := &http.Client{Transport: NewGatekeeper(nil, ts)}

	resp, err := client.Post(srv.URL+"/api/sales/", "application/json", bytes.NewBufferString(`{"quantity":3}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, []string{"Bearer a1", "Bearer a2"}, tokens)
	// the body is resent intact on replay
	require.Equal(t, `{"quantity":3}`, bodies[1])
	require.Equal(t, int32(1), atomic.LoadInt32(&ts.refreshCalls))
}

func TestGatekeeper_ConcurrentRequestsShareOneRefresh(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer a2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	ts := &fakeTokens{token: "a1", refreshTo: "a2", refreshDelay: 50 * time.Millisecond}
	client := &http.Client{Transport: NewGatekeeper(nil, ts)}

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	codes := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := client.Get(srv.URL + "/api/barrels/")
			if err != nil {
				errs[i] = err
				return
			}
			defer resp.Body.Close()
			codes[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, http.StatusOK, codes[i])
	}
	require.Equal(t, int32(1), atomic.LoadInt32(&ts.refreshCalls))
	require.Equal(t, int32(n), atomic.LoadInt32(&hits))
}

func TestGatekeeper_RefreshFailure_Returns401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	ts := &fakeTokens{token: "a1", refreshErr: errors.New("refresh expired")}
	client := &http.Client{Transport: NewGatekeeper(nil, ts)}

	resp, err := client.Get(srv.URL + "/api/barrels/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, int32(1), atomic.LoadInt32(&ts.refreshCalls))
}
