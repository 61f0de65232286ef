// Package paginate holds the page arithmetic shared by list views and the
// list endpoints' query builders.
package paginate

// DefaultMaxVisible is the page window size used by PageNumbers callers that
// have no preference.
const DefaultMaxVisible = 5

// TotalPages returns how many pages of size pageSize are needed for total
// items. A non-positive page size yields 0.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Offset returns the zero based item offset of a one based page.
func Offset(page, pageSize int) int {
	if page < 1 || pageSize <= 0 {
		return 0
	}
	return (page - 1) * pageSize
}

// PageNumbers returns up to maxVisible page numbers centred on current,
// shifted so the window never runs past the first or last page.
func PageNumbers(current, totalPages, maxVisible int) []int {
	if totalPages <= 0 || maxVisible <= 0 {
		return nil
	}

	current = min(max(current, 1), totalPages)

	start := max(current-maxVisible/2, 1)
	end := min(start+maxVisible-1, totalPages)
	start = max(end-maxVisible+1, 1)

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// HasNext reports whether a page follows current.
func HasNext(current, totalPages int) bool { return current < totalPages }

// HasPrev reports whether a page precedes current.
func HasPrev(current int) bool { return current > 1 }

// Page is the list envelope both backends return.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// Pages returns TotalPages, computing it when the backend omitted it.
func (p *Page[T]) Pages() int {
	if p.TotalPages > 0 {
		return p.TotalPages
	}
	return TotalPages(p.Total, p.PageSize)
}

// HasNext reports whether a later page exists.
func (p *Page[T]) HasNext() bool {
	return HasNext(p.Page, p.Pages())
}
