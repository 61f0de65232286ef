package cmssdk

import (
	"context"
	"net/url"

	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
)

// Client wraps an apiclient.Client pointed at the CMS backend. Every method
// performs exactly one HTTP call and returns the backend's error unchanged
// unless its doc says otherwise.
type Client struct {
	api *apiclient.Client
}

// New returns a CMS client that sends requests through api.
func New(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// NewFromURL builds the underlying apiclient.Client as well.
func NewFromURL(baseURL string, opts ...apiclient.Option) *Client {
	opts = append([]apiclient.Option{apiclient.WithName("cms")}, opts...)
	return New(apiclient.New(baseURL, opts...))
}

// API exposes the underlying HTTP client.
func (c *Client) API() *apiclient.Client { return c.api }

// ============================================================================
// Shared request helpers
// ============================================================================

func getList[T any](ctx context.Context, c *Client, path string, params ListParams) (*Page[T], error) {
	var page Page[T]
	if err := c.api.Get(ctx, path, params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func getOne[T any](ctx context.Context, c *Client, path string) (*T, error) {
	var out T
	if err := c.api.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func postOne[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	var out T
	if err := c.api.Post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func putOne[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	var out T
	if err := c.api.Put(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func patchOne[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	var out T
	if err := c.api.Patch(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) del(ctx context.Context, path string) error {
	return c.api.Delete(ctx, path, nil)
}

func seg(s string) string { return url.PathEscape(s) }
