package cmssdk

import (
	"context"
	"net/url"

	"github.com/aussiebroadwan/cmsadmin/pkg/cryptox"
)

type SocialProvider struct {
	ID      string `json:"id"` // google, github, microsoft
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

type SocialAuthorization struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// SocialProviders lists the identity providers enabled for the tenant.
func (c *Client) SocialProviders(ctx context.Context) ([]SocialProvider, error) {
	var out struct {
		Providers []SocialProvider `json:"providers"`
	}
	if err := c.api.Get(ctx, "/auth/social/providers", nil, &out); err != nil {
		return nil, err
	}
	return out.Providers, nil
}

// SocialAuthorizeURL asks the backend for the provider's authorization URL.
// A random state is generated when state is empty; the caller must compare
// it with the state returned on the callback.
func (c *Client) SocialAuthorizeURL(ctx context.Context, provider, redirectURI, state string) (*SocialAuthorization, error) {
	if state == "" {
		var err error
		if state, err = cryptox.NewState(); err != nil {
			return nil, err
		}
	}

	q := url.Values{
		"redirect_uri": {redirectURI},
		"state":        {state},
	}
	var out SocialAuthorization
	if err := c.api.Get(ctx, "/auth/social/"+seg(provider)+"/authorize", q, &out); err != nil {
		return nil, err
	}
	if out.State == "" {
		out.State = state
	}
	return &out, nil
}

// SocialCallback exchanges the provider's code for a session and persists it.
func (c *Client) SocialCallback(ctx context.Context, provider, code, state string) (*LoginResponse, error) {
	resp, err := postOne[LoginResponse](ctx, c, "/auth/social/"+seg(provider)+"/callback", map[string]string{
		"code":  code,
		"state": state,
	})
	if err != nil {
		return nil, err
	}
	if err := c.persistSession(ctx, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
