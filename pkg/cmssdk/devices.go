package cmssdk

import "context"

type DeviceInput struct {
	Name      string `json:"name"`
	Platform  string `json:"platform"`
	PushToken string `json:"push_token,omitempty"`
}

func (c *Client) ListDevices(ctx context.Context) ([]Device, error) {
	var out struct {
		Data []Device `json:"data"`
	}
	if err := c.api.Get(ctx, "/devices", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) RegisterDevice(ctx context.Context, in DeviceInput) (*Device, error) {
	return postOne[Device](ctx, c, "/devices", in)
}

// TrustDevice marks a device as trusted so it skips the second factor.
func (c *Client) TrustDevice(ctx context.Context, id string, trusted bool) (*Device, error) {
	return patchOne[Device](ctx, c, "/devices/"+seg(id), map[string]bool{"trusted": trusted})
}

func (c *Client) RemoveDevice(ctx context.Context, id string) error {
	return c.del(ctx, "/devices/"+seg(id))
}
