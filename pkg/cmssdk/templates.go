package cmssdk

import "context"

type TemplateInput struct {
	Name          string `json:"name"`
	Slug          string `json:"slug,omitempty"`
	ContentTypeID string `json:"content_type_id,omitempty"`
	Body          string `json:"body"`
	Engine        string `json:"engine,omitempty"`
}

func (c *Client) ListTemplates(ctx context.Context, params ListParams) (*Page[Template], error) {
	return getList[Template](ctx, c, "/templates", params)
}

func (c *Client) GetTemplate(ctx context.Context, id string) (*Template, error) {
	return getOne[Template](ctx, c, "/templates/"+seg(id))
}

func (c *Client) CreateTemplate(ctx context.Context, in TemplateInput) (*Template, error) {
	return postOne[Template](ctx, c, "/templates", in)
}

func (c *Client) UpdateTemplate(ctx context.Context, id string, in TemplateInput) (*Template, error) {
	return putOne[Template](ctx, c, "/templates/"+seg(id), in)
}

func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	return c.del(ctx, "/templates/"+seg(id))
}

// PreviewTemplate renders the template against sample data. When data is
// nil the backend uses the linked content type's example entry.
func (c *Client) PreviewTemplate(ctx context.Context, id string, data map[string]any) (*TemplatePreview, error) {
	return postOne[TemplatePreview](ctx, c, "/templates/"+seg(id)+"/preview", map[string]any{"data": data})
}
