package apiclient

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/cmsadmin/pkg/slogx"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	// APIPrefix is prepended to every REST path.
	APIPrefix = "/api/v1"

	// DefaultTimeout bounds every request made by a Client.
	DefaultTimeout = 30 * time.Second

	// DefaultLoginPath is where the navigator is sent when a session expires.
	DefaultLoginPath = "/login"

	refreshPath = "/auth/refresh"
)

// Auth endpoints whose 401s are returned as-is instead of triggering a
// refresh. Matched as path prefixes.
var excludedAuthPaths = []string{
	"/auth/login",
	"/auth/register",
	"/auth/refresh",
	"/auth/social",
}

// Client sends authenticated JSON requests to one backend. It attaches the
// stored bearer token and tenant header to every request and, on a 401,
// refreshes the session once and retries.
//
// Concurrent 401s carrying the same refresh token share one refresh call
// rather than each refreshing on its own. Every request still retries at
// most once, and a caller whose context ends while waiting gets its
// original error without the session being cleared.
type Client struct {
	baseURL    string
	name       string
	httpClient *http.Client

	store     TokenStore
	navigator Navigator
	observer  Observer
	logger    *slog.Logger
	limiter   *rate.Limiter

	tenantID  string
	loginPath string
	userAgent string
	headers   map[string]string

	// refreshes coalesces concurrent refreshes of the same refresh token.
	refreshes singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// New creates a client for the backend rooted at baseURL (scheme and host,
// optionally a path prefix). REST calls go to {baseURL}/api/v1.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		name:    "api",
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		observer:  nopObserver{},
		logger:    slogx.Discard(),
		loginPath: DefaultLoginPath,
		userAgent: "cmsadmin",
		headers:   make(map[string]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.store == nil {
		c.store = NewMemoryStore()
	}

	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout overrides the 30 second request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			clone := *c.httpClient
			clone.Timeout = d
			c.httpClient = &clone
		}
	}
}

// WithTokenStore sets where the session tokens live. Defaults to a
// MemoryStore.
func WithTokenStore(s TokenStore) Option {
	return func(c *Client) { c.store = s }
}

// WithNavigator sets the navigator used to redirect to the login page.
func WithNavigator(n Navigator) Option {
	return func(c *Client) { c.navigator = n }
}

// WithObserver reports request and refresh outcomes.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithName labels the backend in logs and metrics, e.g. "cms".
func WithName(name string) Option {
	return func(c *Client) { c.name = name }
}

// WithRateLimit caps outgoing requests at rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
		}
	}
}

// WithTenant pins X-Tenant-ID instead of deriving it from the token.
func WithTenant(id string) Option {
	return func(c *Client) { c.tenantID = id }
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// WithLoginPath overrides the login page path.
func WithLoginPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.loginPath = path
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// BaseURL returns the backend root without the API prefix.
func (c *Client) BaseURL() string { return c.baseURL }

// APIURL returns the REST root, {baseURL}/api/v1.
func (c *Client) APIURL() string { return c.baseURL + APIPrefix }

// Name returns the backend label.
func (c *Client) Name() string { return c.name }

// Store returns the token store backing the session.
func (c *Client) Store() TokenStore { return c.store }

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger { return c.logger }

func isExcludedAuthPath(path string) bool {
	for _, p := range excludedAuthPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
