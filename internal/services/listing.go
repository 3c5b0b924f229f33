package services

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListOptions carries the page/page_size/search query parameters
// shared by every list endpoint. Page 0 means "no pagination": the
// full collection is returned as a bare array.
type ListOptions struct {
	Search   string
	Page     int
	PageSize int
}

func (o ListOptions) Paged() bool {
	return o.Page > 0
}

func (o ListOptions) Limit() int {
	if o.PageSize <= 0 {
		return DefaultPageSize
	}
	if o.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return o.PageSize
}

func (o ListOptions) Offset() int {
	page := o.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * o.Limit()
}
