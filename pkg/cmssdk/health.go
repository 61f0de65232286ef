package cmssdk

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
)

type HealthStatus struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Health returns the backend health document from GET /health.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	resp, err := c.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/health", Root: true})
	if err != nil {
		return nil, err
	}

	var out HealthStatus
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Healthy reports whether the backend answered its health check. Any error
// yields false.
func (c *Client) Healthy(ctx context.Context) bool {
	_, err := c.Health(ctx)
	return err == nil
}
