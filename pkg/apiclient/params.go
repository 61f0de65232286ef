package apiclient

import (
	"net/url"
	"strconv"
)

// ListParams are the query parameters accepted by list endpoints on both
// backends. Zero fields are omitted.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Sort     string
	Order    string // "asc" or "desc"

	// Filters are sent verbatim, e.g. {"status": "published"}.
	Filters map[string]string
}

// Values encodes the parameters as a query string.
func (p ListParams) Values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Order != "" {
		q.Set("order", p.Order)
	}
	for k, v := range p.Filters {
		q.Set(k, v)
	}
	return q
}
