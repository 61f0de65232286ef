package cmssdk

import (
	"context"
	"net/url"
)

type LocaleInput struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default,omitempty"`
	Enabled   *bool  `json:"enabled,omitempty"`
}

type TranslationInput struct {
	Key       string `json:"key"`
	Locale    string `json:"locale"`
	Value     string `json:"value"`
	Namespace string `json:"namespace,omitempty"`
}

// ============================================================================
// Locales
// ============================================================================

func (c *Client) ListLocales(ctx context.Context) ([]Locale, error) {
	var out struct {
		Data []Locale `json:"data"`
	}
	if err := c.api.Get(ctx, "/locales", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateLocale(ctx context.Context, in LocaleInput) (*Locale, error) {
	return postOne[Locale](ctx, c, "/locales", in)
}

func (c *Client) UpdateLocale(ctx context.Context, id string, in LocaleInput) (*Locale, error) {
	return putOne[Locale](ctx, c, "/locales/"+seg(id), in)
}

func (c *Client) DeleteLocale(ctx context.Context, id string) error {
	return c.del(ctx, "/locales/"+seg(id))
}

// SetDefaultLocale marks the locale as the tenant default.
func (c *Client) SetDefaultLocale(ctx context.Context, id string) (*Locale, error) {
	return postOne[Locale](ctx, c, "/locales/"+seg(id)+"/default", nil)
}

// ============================================================================
// Translations
// ============================================================================

func (c *Client) ListTranslations(ctx context.Context, params ListParams) (*Page[Translation], error) {
	return getList[Translation](ctx, c, "/translations", params)
}

// TranslationBundle returns key -> value for one locale, optionally limited
// to a namespace.
func (c *Client) TranslationBundle(ctx context.Context, locale, namespace string) (map[string]string, error) {
	q := url.Values{}
	if namespace != "" {
		q.Set("namespace", namespace)
	}
	out := map[string]string{}
	if err := c.api.Get(ctx, "/translations/bundle/"+seg(locale), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTranslation(ctx context.Context, in TranslationInput) (*Translation, error) {
	return postOne[Translation](ctx, c, "/translations", in)
}

func (c *Client) UpdateTranslation(ctx context.Context, id string, in TranslationInput) (*Translation, error) {
	return putOne[Translation](ctx, c, "/translations/"+seg(id), in)
}

func (c *Client) DeleteTranslation(ctx context.Context, id string) error {
	return c.del(ctx, "/translations/"+seg(id))
}

// ImportTranslations upserts many translations at once and returns how many
// were written.
func (c *Client) ImportTranslations(ctx context.Context, items []TranslationInput) (int, error) {
	var out struct {
		Imported int `json:"imported"`
	}
	if err := c.api.Post(ctx, "/translations/import", map[string]any{"items": items}, &out); err != nil {
		return 0, err
	}
	return out.Imported, nil
}
