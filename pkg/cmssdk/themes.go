package cmssdk

import (
	"context"

	"github.com/aussiebroadwan/cmsadmin/pkg/theme"
)

type ThemeInput struct {
	Name  string            `json:"name"`
	Seed  string            `json:"seed,omitempty"`
	Light map[string]string `json:"light"`
	Dark  map[string]string `json:"dark"`
}

// ThemeInputFrom converts a generated theme into a create/update body.
func ThemeInputFrom(t theme.Theme) ThemeInput {
	return ThemeInput{
		Name:  t.Name,
		Seed:  t.Seed,
		Light: paletteMap(t.Light),
		Dark:  paletteMap(t.Dark),
	}
}

func paletteMap(p theme.Palette) map[string]string {
	entries := p.Entries()
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Key] = e.Value
	}
	return m
}

func (c *Client) ListThemes(ctx context.Context) ([]Theme, error) {
	var out struct {
		Data []Theme `json:"data"`
	}
	if err := c.api.Get(ctx, "/themes", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) GetTheme(ctx context.Context, id string) (*Theme, error) {
	return getOne[Theme](ctx, c, "/themes/"+seg(id))
}

// ActiveTheme returns the tenant's active theme.
func (c *Client) ActiveTheme(ctx context.Context) (*Theme, error) {
	return getOne[Theme](ctx, c, "/themes/active")
}

func (c *Client) CreateTheme(ctx context.Context, in ThemeInput) (*Theme, error) {
	return postOne[Theme](ctx, c, "/themes", in)
}

func (c *Client) UpdateTheme(ctx context.Context, id string, in ThemeInput) (*Theme, error) {
	return putOne[Theme](ctx, c, "/themes/"+seg(id), in)
}

func (c *Client) DeleteTheme(ctx context.Context, id string) error {
	return c.del(ctx, "/themes/"+seg(id))
}

// ActivateTheme makes the theme the tenant's active one.
func (c *Client) ActivateTheme(ctx context.Context, id string) (*Theme, error) {
	return postOne[Theme](ctx, c, "/themes/"+seg(id)+"/activate", nil)
}
