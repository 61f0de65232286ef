package cmssdk

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

type SearchQuery struct {
	Query  string
	Types  []string // content, media, user
	Locale string
	Limit  int
}

type ReindexStatus struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// Search runs a full-text query across the tenant's indexed resources.
func (c *Client) Search(ctx context.Context, sq SearchQuery) (*SearchResult, error) {
	q := url.Values{"q": {sq.Query}}
	if len(sq.Types) > 0 {
		q.Set("types", strings.Join(sq.Types, ","))
	}
	if sq.Locale != "" {
		q.Set("locale", sq.Locale)
	}
	if sq.Limit > 0 {
		q.Set("limit", strconv.Itoa(sq.Limit))
	}

	var out SearchResult
	if err := c.api.Get(ctx, "/search", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reindex queues a rebuild of the search index.
func (c *Client) Reindex(ctx context.Context) (*ReindexStatus, error) {
	return postOne[ReindexStatus](ctx, c, "/search/reindex", nil)
}
