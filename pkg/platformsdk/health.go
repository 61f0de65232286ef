package platformsdk

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
)

// Healthy reports whether GET /health answered 2xx. Any error yields false.
func (c *Client) Healthy(ctx context.Context) bool {
	_, err := c.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/health", Root: true})
	return err == nil
}
