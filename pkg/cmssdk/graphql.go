package cmssdk

import "context"

// GraphQL forwards a query to the CMS GraphQL endpoint and decodes the
// data field into out.
func (c *Client) GraphQL(ctx context.Context, query string, variables map[string]any, out any) error {
	return c.api.GraphQL(ctx, query, variables, out)
}
