package cmssdk

import "context"

// ListSessions returns the signed in user's active sessions.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	var out struct {
		Data []Session `json:"data"`
	}
	if err := c.api.Get(ctx, "/sessions", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) RevokeSession(ctx context.Context, id string) error {
	return c.del(ctx, "/sessions/"+seg(id))
}

// RevokeOtherSessions signs out everywhere except the current session and
// returns how many sessions were revoked.
func (c *Client) RevokeOtherSessions(ctx context.Context) (int, error) {
	var out struct {
		Revoked int `json:"revoked"`
	}
	if err := c.api.Post(ctx, "/sessions/revoke-others", nil, &out); err != nil {
		return 0, err
	}
	return out.Revoked, nil
}
