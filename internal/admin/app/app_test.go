package app

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/cmsadmin/internal/admin/web"
	"github.com/aussiebroadwan/cmsadmin/internal/store"
	"github.com/aussiebroadwan/cmsadmin/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func healthBackend(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(cms, platform string) Config {
	return Config{
		CMSURL:              cms,
		PlatformURL:         platform,
		RequestTimeout:      5 * time.Second,
		ServeAddr:           "127.0.0.1:0",
		ShutdownGracePeriod: time.Second,
		ThemeSeed:           "#0ea5e9",
		ThemeName:           "sky",
		Store:               StoreConfig{Driver: store.DriverMemory},
	}
}

func TestApplicationServes(t *testing.T) {
	t.Parallel()

	cms := healthBackend(t, http.StatusOK)
	platform := healthBackend(t, http.StatusServiceUnavailable)

	cfg := testConfig(cms.URL, platform.URL)
	clients := NewClientsWithStore(cfg, store.NewMemory(), slogx.Discard(), nil)
	application := NewWithClients(cfg, clients, slogx.Discard())
	t.Cleanup(func() { _ = application.Shutdown() })

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var health web.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.Equal(t, "ok", health.Checks.Store)
	require.Equal(t, "ok", health.Checks.CMS)
	require.Equal(t, "error: unreachable", health.Checks.Platform)

	// The readiness probe went through the instrumented clients
	mresp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer mresp.Body.Close()
	body, err := io.ReadAll(mresp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `cmsadmin_client_requests_total{api="cms",method="GET",status="200"} 1`)
	require.Contains(t, string(body), `cmsadmin_client_requests_total{api="platform",method="GET",status="503"} 1`)
}

func TestApplicationSyncDisabled(t *testing.T) {
	t.Parallel()

	cfg := testConfig("http://127.0.0.1:1", "http://127.0.0.1:1")
	cfg.SyncInterval = 0

	clients := NewClientsWithStore(cfg, store.NewMemory(), slogx.Discard(), nil)
	application := NewWithClients(cfg, clients, slogx.Discard())
	t.Cleanup(func() { _ = application.Shutdown() })

	require.Nil(t, application.inventorySync)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/api/inventory/status")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

type closeCountingStore struct {
	store.Store
	closed atomic.Int32
}

func (s *closeCountingStore) Close() error {
	s.closed.Add(1)
	return s.Store.Close()
}

func TestApplicationRunClosesStoreWhenListenFails(t *testing.T) {
	t.Parallel()

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = busy.Close() })

	cfg := testConfig("http://127.0.0.1:1", "http://127.0.0.1:1")
	cfg.ServeAddr = busy.Addr().String()
	cfg.SyncInterval = time.Hour

	st := &closeCountingStore{Store: store.NewMemory()}
	clients := NewClientsWithStore(cfg, st, slogx.Discard(), nil)
	application := NewWithClients(cfg, clients, slogx.Discard())

	err = application.Run()
	require.ErrorContains(t, err, "server failed")
	require.EqualValues(t, 1, st.closed.Load())
	require.Nil(t, application.inventorySync)
}
