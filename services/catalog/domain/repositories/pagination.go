package repositories

// DefaultPageSize is used when a Pagination is built without an explicit size.
const DefaultPageSize = 10

// Pagination is a zero-based page window: offset = Page × PageSize, so
// consecutive pages are disjoint contiguous windows over the result set.
type Pagination struct {
	Page     int
	PageSize int
}

// NewPagination clamps page to ≥ 0 and falls back to DefaultPageSize for
// non-positive sizes.
func NewPagination(page, pageSize int) Pagination {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// Offset returns the number of records to skip.
func (p Pagination) Offset() int {
	return p.Page * p.PageSize
}

// Bounds returns the [lo, hi) window into a result set of length n.
// A page entirely past the end yields an empty window (lo == hi == n).
func (p Pagination) Bounds(n int) (int, int) {
	lo := p.Offset()
	if lo > n {
		lo = n
	}
	hi := lo + p.PageSize
	if hi > n {
		hi = n
	}
	return lo, hi
}
