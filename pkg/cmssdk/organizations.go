package cmssdk

import (
	"context"
	"encoding/json"
)

type OrganizationInput struct {
	Name     string          `json:"name,omitempty"`
	Slug     string          `json:"slug,omitempty"`
	Domain   string          `json:"domain,omitempty"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

type OrganizationMember struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	RoleSlug string `json:"role"`
}

func (c *Client) ListOrganizations(ctx context.Context, params ListParams) (*Page[Organization], error) {
	return getList[Organization](ctx, c, "/organizations", params)
}

func (c *Client) GetOrganization(ctx context.Context, id string) (*Organization, error) {
	return getOne[Organization](ctx, c, "/organizations/"+seg(id))
}

// CurrentOrganization returns the tenant named by the access token.
func (c *Client) CurrentOrganization(ctx context.Context) (*Organization, error) {
	return getOne[Organization](ctx, c, "/organizations/current")
}

func (c *Client) CreateOrganization(ctx context.Context, in OrganizationInput) (*Organization, error) {
	return postOne[Organization](ctx, c, "/organizations", in)
}

func (c *Client) UpdateOrganization(ctx context.Context, id string, in OrganizationInput) (*Organization, error) {
	return putOne[Organization](ctx, c, "/organizations/"+seg(id), in)
}

func (c *Client) DeleteOrganization(ctx context.Context, id string) error {
	return c.del(ctx, "/organizations/"+seg(id))
}

func (c *Client) OrganizationMembers(ctx context.Context, id string, params ListParams) (*Page[OrganizationMember], error) {
	return getList[OrganizationMember](ctx, c, "/organizations/"+seg(id)+"/members", params)
}
