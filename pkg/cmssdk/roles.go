package cmssdk

import "context"

type RoleInput struct {
	Name          string   `json:"name"`
	Slug          string   `json:"slug,omitempty"`
	Description   string   `json:"description,omitempty"`
	PermissionIDs []string `json:"permission_ids,omitempty"`
}

func (c *Client) ListRoles(ctx context.Context, params ListParams) (*Page[Role], error) {
	return getList[Role](ctx, c, "/roles", params)
}

func (c *Client) GetRole(ctx context.Context, id string) (*Role, error) {
	return getOne[Role](ctx, c, "/roles/"+seg(id))
}

func (c *Client) CreateRole(ctx context.Context, in RoleInput) (*Role, error) {
	return postOne[Role](ctx, c, "/roles", in)
}

func (c *Client) UpdateRole(ctx context.Context, id string, in RoleInput) (*Role, error) {
	return putOne[Role](ctx, c, "/roles/"+seg(id), in)
}

// DeleteRole fails with 409 for system roles or roles still assigned.
func (c *Client) DeleteRole(ctx context.Context, id string) error {
	return c.del(ctx, "/roles/"+seg(id))
}

// ListPermissions returns every permission the backend knows about.
func (c *Client) ListPermissions(ctx context.Context) ([]Permission, error) {
	var out struct {
		Data []Permission `json:"data"`
	}
	if err := c.api.Get(ctx, "/permissions", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// SetRolePermissions replaces the role's permission set.
func (c *Client) SetRolePermissions(ctx context.Context, roleID string, permissionIDs []string) (*Role, error) {
	return putOne[Role](ctx, c, "/roles/"+seg(roleID)+"/permissions", map[string][]string{
		"permission_ids": permissionIDs,
	})
}
