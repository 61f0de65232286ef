package cmssdk

import (
	"context"
	"time"
)

type APIKeyInput struct {
	Name      string     `json:"name"`
	Scopes    []string   `json:"scopes"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ListAPIScopes returns the scopes an API key can be granted.
func (c *Client) ListAPIScopes(ctx context.Context) ([]APIScope, error) {
	var out struct {
		Data []APIScope `json:"data"`
	}
	if err := c.api.Get(ctx, "/api-scopes", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) ListAPIKeys(ctx context.Context, params ListParams) (*Page[APIKey], error) {
	return getList[APIKey](ctx, c, "/api-keys", params)
}

// CreateAPIKey returns the key with its secret populated. The secret is
// never returned again.
func (c *Client) CreateAPIKey(ctx context.Context, in APIKeyInput) (*APIKey, error) {
	return postOne[APIKey](ctx, c, "/api-keys", in)
}

// RotateAPIKey issues a new secret for an existing key.
func (c *Client) RotateAPIKey(ctx context.Context, id string) (*APIKey, error) {
	return postOne[APIKey](ctx, c, "/api-keys/"+seg(id)+"/rotate", nil)
}

func (c *Client) RevokeAPIKey(ctx context.Context, id string) error {
	return c.del(ctx, "/api-keys/"+seg(id))
}
