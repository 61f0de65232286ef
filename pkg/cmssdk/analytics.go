package cmssdk

import (
	"context"
	"net/url"
	"strconv"
)

// AnalyticsOverview returns headline counters for the dashboard.
func (c *Client) AnalyticsOverview(ctx context.Context) (*AnalyticsOverview, error) {
	return getOne[AnalyticsOverview](ctx, c, "/analytics/overview")
}

// ContentStats returns per day counters for the last days days.
func (c *Client) ContentStats(ctx context.Context, days int) ([]ContentStat, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}

	var out struct {
		Data []ContentStat `json:"data"`
	}
	if err := c.api.Get(ctx, "/analytics/content", q, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// TopContent returns the most viewed entries.
func (c *Client) TopContent(ctx context.Context, limit int) ([]TopContent, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out struct {
		Data []TopContent `json:"data"`
	}
	if err := c.api.Get(ctx, "/analytics/top-content", q, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
