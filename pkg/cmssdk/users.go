package cmssdk

import "context"

type UserInput struct {
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
	RoleID   string `json:"role_id,omitempty"`
	Status   string `json:"status,omitempty"`
}

type InviteRequest struct {
	Email  string `json:"email"`
	RoleID string `json:"role_id"`
	Name   string `json:"name,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context, params ListParams) (*Page[User], error) {
	return getList[User](ctx, c, "/users", params)
}

func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	return getOne[User](ctx, c, "/users/"+seg(id))
}

func (c *Client) CreateUser(ctx context.Context, in UserInput) (*User, error) {
	return postOne[User](ctx, c, "/users", in)
}

func (c *Client) UpdateUser(ctx context.Context, id string, in UserInput) (*User, error) {
	return putOne[User](ctx, c, "/users/"+seg(id), in)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.del(ctx, "/users/"+seg(id))
}

// InviteUser emails an invitation and creates the user in the invited state.
func (c *Client) InviteUser(ctx context.Context, in InviteRequest) (*User, error) {
	return postOne[User](ctx, c, "/users/invite", in)
}

// AssignRole replaces the user's role.
func (c *Client) AssignRole(ctx context.Context, userID, roleID string) (*User, error) {
	return putOne[User](ctx, c, "/users/"+seg(userID)+"/role", map[string]string{"role_id": roleID})
}
