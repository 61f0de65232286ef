package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/cmsadmin/internal/admin/worker"
	"github.com/aussiebroadwan/cmsadmin/pkg/httpx"
	"github.com/aussiebroadwan/cmsadmin/pkg/runtimeconfig"
	"github.com/aussiebroadwan/cmsadmin/pkg/slogx"
	"github.com/aussiebroadwan/cmsadmin/pkg/theme"

	_ "github.com/aussiebroadwan/cmsadmin/api/admin" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// HealthChecker is satisfied by the CMS and platform SDK clients.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// Pinger is satisfied by every session store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler // Mux wrapped in middlewares, set by ApplyRoutes

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	endpoints    runtimeconfig.Config
	theme        theme.Theme

	// Optional dependencies. Nil values disable the related route or check.
	Store           Pinger
	CMS             HealthChecker
	Platform        HealthChecker
	Metrics         http.Handler
	InventoryStatus func() worker.SyncStatus
}

func NewRouter(
	buildVersion string,
	endpoints runtimeconfig.Config,
	th theme.Theme,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		endpoints:    endpoints,
		theme:        th,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerPages()
	r.registerAPI()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	r.handler = httpx.Chain(r.Mux, r.middlewares...)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			CMS Admin Server API
//	@version		0.1.0
//	@description	Companion server for the CMS admin console. Serves the landing page with
//	@description	runtime configuration injected, the generated theme, web vitals intake and
//	@description	health probes for the CMS and platform backends.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/cmsadmin
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:3000
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.handler == nil {
		http.Error(w, "routes not applied", http.StatusServiceUnavailable)
		return
	}
	r.handler.ServeHTTP(w, req)
}

func (r *Router) registerPages() {
	landing := &LandingHandler{
		Version:   r.buildVersion,
		Endpoints: r.endpoints,
		Theme:     r.theme,
		Logger:    r.logger,
	}

	// "GET /{$}" only matches the root, everything else falls through to 404
	r.Mux.Handle("GET /{$}",
		httpx.Chain(landing,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerAPI() {
	r.Mux.Handle("GET /api/runtime-config",
		httpx.Chain(RuntimeConfigHandler(r.endpoints),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /api/theme.css",
		httpx.Chain(ThemeCSSHandler(r.theme),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// Beacons are throttled per IP and user agent.
	vitals := &VitalsHandler{Logger: r.logger}
	r.Mux.Handle("/api/vitals",
		httpx.Chain(vitals,
			httpx.Methods(http.MethodPost),
			httpx.RateLimitMiddleware(httpx.ModerateLimit,
				httpx.CompositeKeyExtractor("|", httpx.IPKeyExtractor, httpx.HeaderKeyExtractor("User-Agent")),
			),
		),
	)

	if r.InventoryStatus != nil {
		r.Mux.Handle("GET /api/inventory/status",
			httpx.Chain(InventoryStatusHandler(r.InventoryStatus),
				httpx.RateLimitByIP(httpx.ModerateLimit),
			),
		)
	}
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.Store, r.CMS, r.Platform))

	if r.Metrics != nil {
		r.Mux.Handle("GET /metrics", r.Metrics)
	}
}
