package apiclient_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/cmsadmin/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// mintToken returns an unverified-looking but well formed JWT for org.
func mintToken(t *testing.T, subject, org string, ttl time.Duration) string {
	t.Helper()
	claims := jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		OrganizationID: org,
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

type fakeNavigator struct {
	mu        sync.Mutex
	path      string
	redirects []string
}

func (n *fakeNavigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

func (n *fakeNavigator) Redirect(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.redirects = append(n.redirects, path)
	n.path = path
}

func (n *fakeNavigator) Redirects() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.redirects...)
}

type recordingObserver struct {
	mu        sync.Mutex
	requests  int
	refreshes []string
}

func (o *recordingObserver) ObserveRequest(api, method string, status int, elapsed float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.requests++
}

func (o *recordingObserver) ObserveRefresh(api, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.refreshes = append(o.refreshes, outcome)
}
