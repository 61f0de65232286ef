package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authBackend is a fake CMS that accepts exactly one access token and
// rotates it on refresh.
type authBackend struct {
	t *testing.T

	mu           sync.Mutex
	validAccess  string
	validRefresh string
	nextAccess   string
	nextRefresh  string
	failRefresh  bool
	onRefresh    func()

	refreshCalls  atomic.Int32
	resourceCalls atomic.Int32
	authHeaders   []string
}

func (b *authBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/auth/refresh" {
		b.refreshCalls.Add(1)

		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		// Only refreshes issued by the client carry a refresh_token body.
		if body.RefreshToken != "" {
			assert.Empty(b.t, r.Header.Get("Authorization"), "refresh must bypass the bearer interceptor")
		}

		if b.onRefresh != nil {
			b.onRefresh()
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		if b.failRefresh || body.RefreshToken != b.validRefresh {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		b.validAccess, b.validRefresh = b.nextAccess, b.nextRefresh
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  b.nextAccess,
			"refresh_token": b.nextRefresh,
			"expires_in":    900,
		})
		return
	}

	b.resourceCalls.Add(1)
	b.mu.Lock()
	b.authHeaders = append(b.authHeaders, r.Header.Get("Authorization"))
	ok := r.Header.Get("Authorization") == "Bearer "+b.validAccess
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized","message":"token expired"}`))
		return
	}
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (b *authBackend) headers() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.authHeaders...)
}

// newBackend returns a fake whose current access token is unknown to the
// client, so the first request always 401s. configure runs before the
// server starts.
func newBackend(t *testing.T, configure func(b *authBackend)) (*authBackend, string, string) {
	t.Helper()
	oldAccess := mintToken(t, "u1", "org-1", -time.Minute)
	newAccess := mintToken(t, "u1", "org-1", time.Hour)

	backend := &authBackend{
		t:            t,
		validAccess:  "never-matches-" + oldAccess,
		validRefresh: "refresh-1",
		nextAccess:   newAccess,
		nextRefresh:  "refresh-2",
	}
	if configure != nil {
		configure(backend)
	}
	return backend, oldAccess, newAccess
}

func newRefreshFixture(t *testing.T, configure func(b *authBackend)) (*authBackend, *httptest.Server, string, string) {
	t.Helper()
	backend, oldAccess, newAccess := newBackend(t, configure)
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	return backend, srv, oldAccess, newAccess
}

func TestRefreshOn401(t *testing.T) {
	t.Parallel()

	backend, srv, oldAccess, newAccess := newRefreshFixture(t, nil)

	ctx := context.Background()
	store := apiclient.NewMemoryStore()
	require.NoError(t, apiclient.SaveTokens(ctx, store, oldAccess, "refresh-1"))

	obs := &recordingObserver{}
	nav := &fakeNavigator{path: "/dashboard"}
	c := apiclient.New(srv.URL, apiclient.WithTokenStore(store), apiclient.WithNavigator(nav), apiclient.WithObserver(obs))

	var out map[string]string
	require.NoError(t, c.Get(ctx, "/content/entries", nil, &out))
	require.Equal(t, "ok", out["status"])

	// exactly one refresh, then exactly one retry with the new token
	require.EqualValues(t, 1, backend.refreshCalls.Load())
	require.EqualValues(t, 2, backend.resourceCalls.Load())
	require.Equal(t, []string{"Bearer " + oldAccess, "Bearer " + newAccess}, backend.headers())

	access, _ := store.Get(ctx, apiclient.KeyAccessToken)
	refresh, _ := store.Get(ctx, apiclient.KeyRefreshToken)
	require.Equal(t, newAccess, access)
	require.Equal(t, "refresh-2", refresh)

	require.Empty(t, nav.Redirects())
	require.Equal(t, []string{apiclient.RefreshSucceeded}, obs.refreshes)
}

func TestRefreshWithoutRefreshToken(t *testing.T) {
	t.Parallel()

	backend, srv, oldAccess, _ := newRefreshFixture(t, nil)

	ctx := context.Background()
	store := apiclient.NewMemoryStore()
	require.NoError(t, store.Set(ctx, apiclient.KeyAccessToken, oldAccess))

	nav := &fakeNavigator{path: "/dashboard"}
	c := apiclient.New(srv.URL, apiclient.WithTokenStore(store), apiclient.WithNavigator(nav))

	err := c.Get(ctx, "/content/entries", nil, nil)
	require.Error(t, err)
	require.True(t, apiclient.IsUnauthorized(err))
	require.NotErrorIs(t, err, apiclient.ErrSessionExpired)

	require.Zero(t, backend.refreshCalls.Load())
	require.EqualValues(t, 1, backend.resourceCalls.Load())
	require.Empty(t, nav.Redirects())

	// the session is left untouched
	access, _ := store.Get(ctx, apiclient.KeyAccessToken)
	require.Equal(t, oldAccess, access)
}

func TestRefreshFailureExpiresSession(t *testing.T) {
	t.Parallel()

	backend, srv, oldAccess, _ := newRefreshFixture(t, func(b *authBackend) { b.failRefresh = true })

	ctx := context.Background()
	store := apiclient.NewMemoryStore()
	require.NoError(t, apiclient.SaveTokens(ctx, store, oldAccess, "refresh-1"))
	require.NoError(t, store.Set(ctx, apiclient.KeyUser, `{"id":"u1"}`))

	nav := &fakeNavigator{path: "/content"}
	c := apiclient.New(srv.URL, apiclient.WithTokenStore(store), apiclient.WithNavigator(nav))

	err := c.Get(ctx, "/content/entries", nil, nil)
	require.ErrorIs(t, err, apiclient.ErrSessionExpired)
	require.True(t, apiclient.IsUnauthorized(err))

	require.EqualValues(t, 1, backend.refreshCalls.Load())
	require.EqualValues(t, 1, backend.resourceCalls.Load())
	require.Equal(t, []string{"/login"}, nav.Redirects())

	for _, k := range []string{apiclient.KeyAccessToken, apiclient.KeyRefreshToken, apiclient.KeyUser} {
		v, _ := store.Get(ctx, k)
		require.Empty(t, v, k)
	}
}

func TestRefreshFailureOnLoginPage(t *testing.T) {
	t.Parallel()

	_, srv, oldAccess, _ := newRefreshFixture(t, func(b *authBackend) { b.failRefresh = true })

	ctx := context.Background()
	store := apiclient.NewMemoryStore()
	require.NoError(t, apiclient.SaveTokens(ctx, store, oldAccess, "refresh-1"))

	nav := &fakeNavigator{path: "/signin"}
	c := apiclient.New(srv.URL,
		apiclient.WithTokenStore(store),
		apiclient.WithNavigator(nav),
		apiclient.WithLoginPath("/signin"),
	)

	err := c.Get(ctx, "/me", nil, nil)
	require.ErrorIs(t, err, apiclient.ErrSessionExpired)
	require.Empty(t, nav.Redirects())
}

func TestRefreshFailureKeepsNewerSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := apiclient.NewMemoryStore()

	// Another request logs in again while our refresh is in flight.
	fresh := mintToken(t, "u1", "org-1", time.Hour)
	_, srv, oldAccess, _ := newRefreshFixture(t, func(b *authBackend) {
		b.failRefresh = true
		b.onRefresh = func() {
			_ = apiclient.SaveTokens(ctx, store, fresh, "refresh-9")
		}
	})
	require.NoError(t, apiclient.SaveTokens(ctx, store, oldAccess, "refresh-1"))

	nav := &fakeNavigator{path: "/content"}
	c := apiclient.New(srv.URL, apiclient.WithTokenStore(store), apiclient.WithNavigator(nav))

	err := c.Get(ctx, "/content/entries", nil, nil)
	require.True(t, apiclient.IsUnauthorized(err))
	require.NotErrorIs(t, err, apiclient.ErrSessionExpired)
	require.Empty(t, nav.Redirects())

	access, _ := store.Get(ctx, apiclient.KeyAccessToken)
	require.Equal(t, fresh, access)
}

func TestRefreshFailureWithExpiredNewerToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := apiclient.NewMemoryStore()

	stale := mintToken(t, "u1", "org-1", -time.Hour)
	_, srv, oldAccess, _ := newRefreshFixture(t, func(b *authBackend) {
		b.failRefresh = true
		b.onRefresh = func() {
			_ = store.Set(ctx, apiclient.KeyAccessToken, stale)
		}
	})
	require.NoError(t, apiclient.SaveTokens(ctx, store, oldAccess, "refresh-1"))

	nav := &fakeNavigator{path: "/content"}
	c := apiclient.New(srv.URL, apiclient.WithTokenStore(store), apiclient.WithNavigator(nav))

	err := c.Get(ctx, "/content/entries", nil, nil)
	require.ErrorIs(t, err, apiclient.ErrSessionExpired)
	require.Equal(t, []string{"/login"}, nav.Redirects())
}

func TestCancelledWaiterKeepsSession(t *testing.T) {
	t.Parallel()

	backend, srv, oldAccess, newAccess := newRefreshFixture(t, func(b *authBackend) {
		b.onRefresh = func() { time.Sleep(300 * time.Millisecond) }
	})

	store := apiclient.NewMemoryStore()
	require.NoError(t, apiclient.SaveTokens(context.Background(), store, oldAccess, "refresh-1"))

	nav := &fakeNavigator{path: "/content"}
	c := apiclient.New(srv.URL, apiclient.WithTokenStore(store), apiclient.WithNavigator(nav))

	shortCtx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	errShort := make(chan error, 1)
	go func() { errShort <- c.Get(shortCtx, "/x", nil, nil) }()

	// Join the refresh the short request started.
	require.Eventually(t, func() bool { return backend.refreshCalls.Load() == 1 },
		time.Second, 5*time.Millisecond)

	var out map[string]string
	require.NoError(t, c.Get(context.Background(), "/y", nil, &out))
	require.Equal(t, "ok", out["status"])

	err := <-errShort
	require.True(t, apiclient.IsUnauthorized(err))
	require.NotErrorIs(t, err, apiclient.ErrSessionExpired)

	require.EqualValues(t, 1, backend.refreshCalls.Load())
	require.Empty(t, nav.Redirects())

	access, _ := store.Get(context.Background(), apiclient.KeyAccessToken)
	refresh, _ := store.Get(context.Background(), apiclient.KeyRefreshToken)
	require.Equal(t, newAccess, access)
	require.Equal(t, "refresh-2", refresh)
}

func TestNoRefreshOnAuthEndpoints(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/auth/login", "/auth/register", "/auth/refresh", "/auth/social/github/callback"} {
		t.Run(strings.TrimPrefix(path, "/"), func(t *testing.T) {
			backend, srv, oldAccess, _ := newRefreshFixture(t, nil)

			ctx := context.Background()
			store := apiclient.NewMemoryStore()
			require.NoError(t, apiclient.SaveTokens(ctx, store, oldAccess, "refresh-1"))

			c := apiclient.New(srv.URL, apiclient.WithTokenStore(store))
			err := c.Post(ctx, path, map[string]string{"email": "a@b.c"}, nil)
			require.True(t, apiclient.IsUnauthorized(err))

			// A request to /auth/refresh itself is counted as a refresh call
			// by the fake; nothing else may be.
			want := int32(0)
			if path == "/auth/refresh" {
				want = 1
			}
			require.Equal(t, want, backend.refreshCalls.Load())
		})
	}
}

func TestRetryIsAttemptedOnlyOnce(t *testing.T) {
	t.Parallel()

	var refreshCalls, resourceCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/refresh" {
			refreshCalls.Add(1)
			_, _ = w.Write([]byte(`{"access_token":"still-bad","refresh_token":"r2"}`))
			return
		}
		resourceCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	store := apiclient.NewMemoryStore()
	require.NoError(t, apiclient.SaveTokens(ctx, store, "a1", "r1"))

	err := apiclient.New(srv.URL, apiclient.WithTokenStore(store)).Get(ctx, "/x", nil, nil)
	require.True(t, apiclient.IsUnauthorized(err))
	require.EqualValues(t, 1, refreshCalls.Load())
	require.EqualValues(t, 2, resourceCalls.Load())
}

func TestConcurrentRefreshIsCoalesced(t *testing.T) {
	t.Parallel()

	const workers = 5

	// Hold the refresh until every worker has seen its 401 and had time to
	// join the in-flight refresh.
	var unauthorized atomic.Int32
	backend, oldAccess, newAccess := newBackend(t, func(b *authBackend) {
		b.onRefresh = func() {
			deadline := time.Now().Add(2 * time.Second)
			for unauthorized.Load() < workers && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}
			time.Sleep(100 * time.Millisecond)
		}
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := httptest.NewRecorder()
		backend.ServeHTTP(rec, r)
		if rec.Code == http.StatusUnauthorized && r.URL.Path != "/api/v1/auth/refresh" {
			unauthorized.Add(1)
		}
		for k, v := range rec.Header() {
			w.Header()[k] = v
		}
		w.WriteHeader(rec.Code)
		_, _ = w.Write(rec.Body.Bytes())
	}))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	store := apiclient.NewMemoryStore()
	require.NoError(t, apiclient.SaveTokens(ctx, store, oldAccess, "refresh-1"))
	c := apiclient.New(srv.URL, apiclient.WithTokenStore(store))

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- c.Get(ctx, "/content/entries", nil, nil)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	require.EqualValues(t, 1, backend.refreshCalls.Load())

	access, _ := store.Get(ctx, apiclient.KeyAccessToken)
	require.Equal(t, newAccess, access)
}
