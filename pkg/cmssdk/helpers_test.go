package cmssdk_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
	"github.com/aussiebroadwan/cmsadmin/pkg/cmssdk"
	"github.com/stretchr/testify/require"
)

// recorded is one request seen by the fake backend.
type recorded struct {
	Method      string
	Path        string
	Query       string
	ContentType string
	Body        []byte
}

// fakeCMS serves canned responses keyed by "METHOD /path" and records every
// request it receives.
type fakeCMS struct {
	mu     sync.Mutex
	seen   []recorded
	routes map[string]http.HandlerFunc
}

func newFakeCMS(t *testing.T, routes map[string]http.HandlerFunc) (*cmssdk.Client, *fakeCMS, apiclient.TokenStore) {
	t.Helper()

	f := &fakeCMS{routes: routes}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	store := apiclient.NewMemoryStore()
	return cmssdk.NewFromURL(srv.URL, apiclient.WithTokenStore(store)), f, store
}

func (f *fakeCMS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))

	f.mu.Lock()
	f.seen = append(f.seen, recorded{
		Method:      r.Method,
		Path:        r.URL.Path,
		Query:       r.URL.RawQuery,
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	})
	h, ok := f.routes[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","message":"no route"}`))
		return
	}
	h(w, r)
}

func (f *fakeCMS) requests() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recorded(nil), f.seen...)
}

func (f *fakeCMS) last(t *testing.T) recorded {
	t.Helper()
	reqs := f.requests()
	require.NotEmpty(t, reqs)
	return reqs[len(reqs)-1]
}

func reply(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if v != nil {
			_ = json.NewEncoder(w).Encode(v)
		}
	}
}

func decodeBody(t *testing.T, r recorded) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(r.Body, &m))
	return m
}
