package platformsdk

import (
	"context"
	"net/url"

	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
	"github.com/aussiebroadwan/cmsadmin/pkg/paginate"
)

// Client talks to the boutique platform backend: orders, inventory,
// employees and customers. It shares its session with the CMS client when
// both are built on the same TokenStore.
type Client struct {
	api *apiclient.Client
}

func New(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// NewFromURL builds the underlying apiclient.Client as well.
func NewFromURL(baseURL string, opts ...apiclient.Option) *Client {
	opts = append([]apiclient.Option{apiclient.WithName("platform")}, opts...)
	return New(apiclient.New(baseURL, opts...))
}

// API exposes the underlying HTTP client.
func (c *Client) API() *apiclient.Client { return c.api }

type Page[T any] = paginate.Page[T]

type ListParams = apiclient.ListParams

func getList[T any](ctx context.Context, c *Client, path string, params ListParams) (*Page[T], error) {
	var page Page[T]
	if err := c.api.Get(ctx, path, params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func getOne[T any](ctx context.Context, c *Client, path string, query url.Values) (*T, error) {
	var out T
	if err := c.api.Get(ctx, path, query, &out); err != nil {
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

func seg(s string) string { return url.PathEscape(s) }
