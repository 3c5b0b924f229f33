package listview

// Paginator tracks the page window over a collection. The current page
// always satisfies 1 <= page <= max(1, totalPages); navigation past
// either edge is a no-op rather than an error.
type Paginator struct {
	page     int
	pageSize int
	total    int
}

const DefaultPageSize = 10

func NewPaginator(pageSize int) *Paginator {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Paginator{page: 1, pageSize: pageSize}
}

func (p *Paginator) CurrentPage() int { return p.page }
func (p *Paginator) PageSize() int    { return p.pageSize }
func (p *Paginator) TotalItems() int  { return p.total }

func (p *Paginator) TotalPages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.pageSize - 1) / p.pageSize
}

// ItemRange is the 1-indexed [start, end] of the current page, clamped
// to the collection. An empty collection yields [0, 0].
func (p *Paginator) ItemRange() (int, int) {
	if p.total == 0 {
		return 0, 0
	}
	start := (p.page-1)*p.pageSize + 1
	end := min(p.page*p.pageSize, p.total)
	return start, end
}

// SetTotal records the collection size and clamps the current page
// back into range when the collection shrank.
func (p *Paginator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.clamp()
}

// SetPageSize recomputes the window for a new page size and clamps the
// current page into range. It never resets to page 1 outright; the
// reader stays as close as possible to where they were.
func (p *Paginator) SetPageSize(size int) {
	if size < 1 {
		return
	}
	p.pageSize = size
	p.clamp()
}

// GoTo moves to the given page, reporting whether the page changed.
// Out-of-range targets are no-ops.
func (p *Paginator) GoTo(page int) bool {
	if page < 1 || page > p.TotalPages() || page == p.page {
		return false
	}
	p.page = page
	return true
}

func (p *Paginator) Next() bool  { return p.GoTo(p.page + 1) }
func (p *Paginator) Prev() bool  { return p.GoTo(p.page - 1) }
func (p *Paginator) First() bool { return p.GoTo(1) }
func (p *Paginator) Last() bool  { return p.GoTo(p.TotalPages()) }

func (p *Paginator) clamp() {
	if max := p.TotalPages(); p.page > max {
		p.page = max
	}
	if p.page < 1 {
		p.page = 1
	}
}
