package paginator

// Adjust replaces out-of-range values with defaults and caps the limit.
func (q *PaginateQuery) Adjust() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	switch {
	case q.Limit < 1:
		q.Limit = DefaultLimit
	case q.Limit > MaxLimit:
		q.Limit = MaxLimit
	}
}

// Offset is the number of rows before the requested page.
func (q PaginateQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// New describes the page q selected out of total rows, count of which were returned.
func New(q PaginateQuery, total int64, count int) Paginator {
	return Paginator{Total: total, Count: count, PerPage: q.Limit, CurrentPage: q.Page}
}

func (p Paginator) TotalPages() int {
	if p.Total <= 0 || p.PerPage <= 0 {
		return 0
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

func (p Paginator) ToResponse() PaginatorResponse {
	pages := p.TotalPages()
	return PaginatorResponse{
		Total:       p.Total,
		Count:       p.Count,
		PerPage:     p.PerPage,
		CurrentPage: p.CurrentPage,
		TotalPages:  pages,
		HasNext:     p.CurrentPage < pages,
		HasPrev:     p.CurrentPage > 1,
	}
}
