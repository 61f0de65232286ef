package admin_test

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/cmsadmin/internal/admin/app"
	"github.com/aussiebroadwan/cmsadmin/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

/*
 * A stateful stand-in for the CMS and platform backends. Access tokens are
 * tracked server side so tests can expire or revoke them, and refresh
 * tokens rotate on every use.
 */

const (
	adminEmail    = "admin@example.com"
	adminPassword = "Admin123!"
	passphrase    = "correct horse battery staple"
)

type backend struct {
	t   *testing.T
	srv *httptest.Server

	mu      sync.Mutex
	access  map[string]bool
	refresh string

	// When set, every 401 waits here until all expected requests have
	// been rejected, so they reach the refresh path together.
	barrier *sync.WaitGroup

	refreshCalls atomic.Int32
	logins       atomic.Int32
}

func newBackend(t *testing.T) *backend {
	t.Helper()

	b := &backend{t: t, access: make(map[string]bool)}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("POST /api/v1/auth/login", b.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/refresh", b.handleRefresh)
	mux.HandleFunc("POST /api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		b.expireAll()
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/v1/auth/me", b.authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, adminUser())
	}))
	mux.HandleFunc("GET /api/v1/content", b.authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"data": []map[string]any{
				{"id": "c-1", "slug": "home", "title": "Home", "status": "published", "locale": "en-AU"},
				{"id": "c-2", "slug": "about", "title": "About", "status": "draft", "locale": "en-AU"},
			},
			"total":     2,
			"page":      1,
			"page_size": 20,
		})
	}))
	mux.HandleFunc("GET /api/v1/inventory/changes", b.authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"items": []map[string]any{
				{"id": "i-1", "sku": "SCARF-01", "name": "Silk scarf", "quantity": 1, "reorder_level": 4, "unit_cost": "12.00"},
				{"id": "i-2", "sku": "SHIRT-02", "name": "Linen shirt", "quantity": 30, "reorder_level": 5, "unit_cost": "35.00"},
			},
			"server_time": time.Now().UTC().Format(time.RFC3339),
		})
	}))

	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) URL() string { return b.srv.URL }

func adminUser() map[string]any {
	return map[string]any{"id": "user-1", "email": adminEmail, "name": "Administrator"}
}

func (b *backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.Email != adminEmail || body.Password != adminPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_credentials", "message": "invalid email or password"})
		return
	}

	b.logins.Add(1)
	resp := b.issue()
	resp["user"] = adminUser()
	writeJSON(w, http.StatusOK, resp)
}

func (b *backend) handleRefresh(w http.ResponseWriter, r *http.Request) {
	b.refreshCalls.Add(1)

	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	// Slow enough that concurrent callers pile up behind one refresh
	time.Sleep(50 * time.Millisecond)

	b.mu.Lock()
	valid := body.RefreshToken != "" && body.RefreshToken == b.refresh
	b.mu.Unlock()
	if !valid {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_grant", "message": "refresh token revoked"})
		return
	}
	writeJSON(w, http.StatusOK, b.issue())
}

// issue mints a new access token and rotates the refresh token.
func (b *backend) issue() map[string]any {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email:          adminEmail,
		OrganizationID: "org-1",
	}).SignedString([]byte("e2e-key"))
	require.NoError(b.t, err)

	refresh := "rt-" + uuid.NewString()

	b.mu.Lock()
	b.access[tok] = true
	b.refresh = refresh
	b.mu.Unlock()

	return map[string]any{"access_token": tok, "refresh_token": refresh, "expires_in": 3600}
}

func (b *backend) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		b.mu.Lock()
		ok := b.access[tok]
		barrier := b.barrier
		b.mu.Unlock()

		if !ok {
			if barrier != nil {
				barrier.Done()
				barrier.Wait()
			}
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized", "message": "token expired"})
			return
		}
		next(w, r)
	}
}

// expireAll invalidates every access token but keeps the refresh token.
func (b *backend) expireAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.access)
}

// revoke invalidates every access and refresh token.
func (b *backend) revoke() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.access)
	b.refresh = ""
}

// holdUnauthorized makes the next n rejected requests wait for each other.
func (b *backend) holdUnauthorized(n int) {
	wg := &sync.WaitGroup{}
	wg.Add(n)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.barrier = wg
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// loadConfig writes a config file pointing both APIs at b with a sealed
// sqlite store in a temp dir.
func loadConfig(t *testing.T, b *backend, extra ...string) app.Config {
	t.Helper()

	dir := t.TempDir()
	passFile := filepath.Join(dir, "passphrase")
	require.NoError(t, os.WriteFile(passFile, []byte(passphrase+"\n"), 0o600))

	lines := append([]string{
		"env: test",
		"cms_url: " + b.URL(),
		"platform_url: " + b.URL(),
		"log:",
		"  level: error",
		"store:",
		"  driver: sqlite",
		"  sqlite_path: " + filepath.Join(dir, "session.db"),
		"  passphrase_file: " + passFile,
	}, extra...)

	file := filepath.Join(dir, "cmsadmin.yaml")
	require.NoError(t, os.WriteFile(file, []byte(strings.Join(lines, "\n")+"\n"), 0o600))

	cfg, err := app.LoadConfig(file)
	require.NoError(t, err)
	return cfg
}

func newClients(t *testing.T, cfg app.Config, nav *app.TerminalNavigator) *app.Clients {
	t.Helper()

	clients, err := app.NewClients(t.Context(), cfg, app.NewLogger(cfg, "e2e", io.Discard), nav)
	require.NoError(t, err)
	return clients
}

func freeAddr(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}
