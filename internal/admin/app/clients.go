package app

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/cmsadmin/internal/store"
	"github.com/aussiebroadwan/cmsadmin/internal/telemetry"
	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
	"github.com/aussiebroadwan/cmsadmin/pkg/cmssdk"
	"github.com/aussiebroadwan/cmsadmin/pkg/platformsdk"
	"github.com/aussiebroadwan/cmsadmin/pkg/runtimeconfig"
)

// Clients bundles the two backend SDKs over one shared session store, so a
// login through the CMS client authenticates platform calls as well.
type Clients struct {
	CMS       *cmssdk.Client
	Platform  *platformsdk.Client
	Store     store.Store
	Observer  *telemetry.Observer
	Endpoints runtimeconfig.Config
}

// NewClients opens the session store and builds both SDK clients. nav may be
// nil.
func NewClients(ctx context.Context, cfg Config, logger *slog.Logger, nav apiclient.Navigator) (*Clients, error) {
	s, err := OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}
	return NewClientsWithStore(cfg, s, logger, nav), nil
}

// NewClientsWithStore builds both SDK clients over an already open store.
func NewClientsWithStore(cfg Config, s store.Store, logger *slog.Logger, nav apiclient.Navigator) *Clients {
	observer := telemetry.New()
	endpoints := cfg.Endpoints()

	opts := []apiclient.Option{
		apiclient.WithTokenStore(s),
		apiclient.WithObserver(observer),
		apiclient.WithLogger(logger),
		apiclient.WithTimeout(cfg.RequestTimeout),
		apiclient.WithUserAgent("cmsadmin/" + BuildVersion),
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, apiclient.WithRateLimit(cfg.RateLimit, cfg.RateBurst))
	}
	if cfg.Tenant != "" {
		opts = append(opts, apiclient.WithTenant(cfg.Tenant))
	}
	if nav != nil {
		opts = append(opts, apiclient.WithNavigator(nav))
	}

	return &Clients{
		CMS:       cmssdk.NewFromURL(endpoints.CMSAPIURL, opts...),
		Platform:  platformsdk.NewFromURL(endpoints.PlatformAPIURL, opts...),
		Store:     s,
		Observer:  observer,
		Endpoints: endpoints,
	}
}

// HasSession reports whether a refresh token is stored.
func (c *Clients) HasSession(ctx context.Context) bool {
	v, err := c.Store.Get(ctx, apiclient.KeyRefreshToken)
	return err == nil && v != ""
}

func (c *Clients) Close() error { return c.Store.Close() }
