package cmssdk

import (
	"context"
	"time"
)

// AuditLogFilter narrows ListAuditLogs. Zero fields are ignored.
type AuditLogFilter struct {
	ListParams

	UserID       string
	Action       string
	ResourceType string
	Since        time.Time
	Until        time.Time
}

func (f AuditLogFilter) params() ListParams {
	p := f.ListParams
	filters := make(map[string]string, len(p.Filters)+5)
	for k, v := range p.Filters {
		filters[k] = v
	}

	set := func(k, v string) {
		if v != "" {
			filters[k] = v
		}
	}
	set("user_id", f.UserID)
	set("action", f.Action)
	set("resource_type", f.ResourceType)
	if !f.Since.IsZero() {
		set("since", f.Since.UTC().Format(time.RFC3339))
	}
	if !f.Until.IsZero() {
		set("until", f.Until.UTC().Format(time.RFC3339))
	}

	p.Filters = filters
	return p
}

func (c *Client) ListAuditLogs(ctx context.Context, filter AuditLogFilter) (*Page[AuditLog], error) {
	return getList[AuditLog](ctx, c, "/audit-logs", filter.params())
}

func (c *Client) GetAuditLog(ctx context.Context, id string) (*AuditLog, error) {
	return getOne[AuditLog](ctx, c, "/audit-logs/"+seg(id))
}
