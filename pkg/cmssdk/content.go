package cmssdk

import (
	"context"
	"net/url"
	"strconv"
)

// ============================================================================
// Content types
// ============================================================================

type ContentTypeInput struct {
	Name        string            `json:"name"`
	Slug        string            `json:"slug,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []FieldDefinition `json:"fields"`
	IsSingleton bool              `json:"is_singleton,omitempty"`
}

func (c *Client) ListContentTypes(ctx context.Context, params ListParams) (*Page[ContentType], error) {
	return getList[ContentType](ctx, c, "/content-types", params)
}

func (c *Client) GetContentType(ctx context.Context, id string) (*ContentType, error) {
	return getOne[ContentType](ctx, c, "/content-types/"+seg(id))
}

func (c *Client) CreateContentType(ctx context.Context, in ContentTypeInput) (*ContentType, error) {
	return postOne[ContentType](ctx, c, "/content-types", in)
}

func (c *Client) UpdateContentType(ctx context.Context, id string, in ContentTypeInput) (*ContentType, error) {
	return putOne[ContentType](ctx, c, "/content-types/"+seg(id), in)
}

func (c *Client) DeleteContentType(ctx context.Context, id string) error {
	return c.del(ctx, "/content-types/"+seg(id))
}

// ============================================================================
// Content entries
// ============================================================================

type ContentEntryInput struct {
	ContentTypeID string         `json:"content_type_id,omitempty"`
	Title         string         `json:"title"`
	Slug          string         `json:"slug,omitempty"`
	Locale        string         `json:"locale,omitempty"`
	Status        string         `json:"status,omitempty"`
	Data          map[string]any `json:"data"`
	Comment       string         `json:"comment,omitempty"`
}

// ListContent lists entries. Filter by type with
// ListParams.Filters["content_type"] and by state with Filters["status"].
func (c *Client) ListContent(ctx context.Context, params ListParams) (*Page[ContentEntry], error) {
	return getList[ContentEntry](ctx, c, "/content", params)
}

func (c *Client) GetContent(ctx context.Context, id string) (*ContentEntry, error) {
	return getOne[ContentEntry](ctx, c, "/content/"+seg(id))
}

// GetContentBySlug fetches the entry with slug in the given locale. An
// empty locale means the tenant default.
func (c *Client) GetContentBySlug(ctx context.Context, typeSlug, slug, locale string) (*ContentEntry, error) {
	var q url.Values
	if locale != "" {
		q = url.Values{"locale": {locale}}
	}

	var out ContentEntry
	if err := c.api.Get(ctx, "/content/by-slug/"+seg(typeSlug)+"/"+seg(slug), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateContent(ctx context.Context, in ContentEntryInput) (*ContentEntry, error) {
	return postOne[ContentEntry](ctx, c, "/content", in)
}

func (c *Client) UpdateContent(ctx context.Context, id string, in ContentEntryInput) (*ContentEntry, error) {
	return putOne[ContentEntry](ctx, c, "/content/"+seg(id), in)
}

func (c *Client) DeleteContent(ctx context.Context, id string) error {
	return c.del(ctx, "/content/"+seg(id))
}

// PublishContent makes the entry's current version live.
func (c *Client) PublishContent(ctx context.Context, id string) (*ContentEntry, error) {
	return postOne[ContentEntry](ctx, c, "/content/"+seg(id)+"/publish", nil)
}

// UnpublishContent moves the entry back to draft.
func (c *Client) UnpublishContent(ctx context.Context, id string) (*ContentEntry, error) {
	return postOne[ContentEntry](ctx, c, "/content/"+seg(id)+"/unpublish", nil)
}

// ContentVersions lists every saved version of an entry, newest first.
func (c *Client) ContentVersions(ctx context.Context, id string) ([]ContentVersion, error) {
	var out struct {
		Data []ContentVersion `json:"data"`
	}
	if err := c.api.Get(ctx, "/content/"+seg(id)+"/versions", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// RestoreContentVersion copies an older version over the entry as a new
// draft version.
func (c *Client) RestoreContentVersion(ctx context.Context, id string, version int) (*ContentEntry, error) {
	return postOne[ContentEntry](ctx, c, "/content/"+seg(id)+"/versions/"+strconv.Itoa(version)+"/restore", nil)
}
