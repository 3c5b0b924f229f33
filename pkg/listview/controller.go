package listview

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/romdo/go-debounce"
)

type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Mode picks how the controller gets its rows.
type Mode int

const (
	// ModeFetchAll loads the whole collection up front and filters,
	// sorts, and paginates it locally.
	ModeFetchAll Mode = iota
	// ModePaged requests one server page per trigger and sends the
	// search query to the server.
	ModePaged
)

// SearchDebounce is the idle period before a server-side search query
// actually triggers a request. Each keystroke reschedules the timer.
const SearchDebounce = 500 * time.Millisecond

// Config builds a Controller. Client carries the base URL and auth
// headers; Resource is the path segment like "rooms". Store is
// optional and enables the fetch-all cache.
type Config[T any] struct {
	Client   *resty.Client
	Resource string
	Schema   Schema[T]
	Mode     Mode
	PageSize int

	Store Store
	TTL   time.Duration

	// SearchWait overrides SearchDebounce, mainly for tests.
	SearchWait time.Duration
}

// Controller is one list view: a collection, the user's filter, sort,
// and page window over it, and the loading/ready/error state of the
// fetch cycle that produced it.
type Controller[T any] struct {
	fetcher *Fetcher[T]
	cache   *Cache[T]
	schema  Schema[T]
	mode    Mode

	mu         sync.Mutex
	paginator  *Paginator
	collection []T
	state      State
	err        error
	filter     string
	sort       SortState
	search     string

	// generation makes the latest triggered request the winner: a
	// response from an older trigger is dropped, not applied.
	generation atomic.Uint64

	debouncedSearch func()
	cancelSearch    func()
}

func NewController[T any](cfg Config[T]) *Controller[T] {
	c := &Controller[T]{
		fetcher:   NewFetcher[T](cfg.Client, cfg.Resource),
		schema:    cfg.Schema,
		mode:      cfg.Mode,
		paginator: NewPaginator(cfg.PageSize),
		state:     StateLoading,
	}
	if cfg.Store != nil {
		c.cache = NewCache[T](cfg.Store, cfg.Resource, cfg.TTL)
	}

	wait := cfg.SearchWait
	if wait <= 0 {
		wait = SearchDebounce
	}
	c.debouncedSearch, c.cancelSearch = debounce.New(wait, func() {
		_ = c.Reload(context.Background())
	})

	return c
}

// Init loads the initial state. A fresh cache entry is served
// immediately with no loading pass; otherwise the controller fetches.
func (c *Controller[T]) Init(ctx context.Context) error {
	if c.mode == ModeFetchAll && c.cache != nil {
		if data, ok := c.cache.Get(); ok {
			c.mu.Lock()
			c.collection = data
			c.paginator.SetTotal(len(c.visibleLocked()))
			c.state = StateReady
			c.err = nil
			c.mu.Unlock()
			return nil
		}
	}
	return c.Reload(ctx)
}

// Reload fetches according to the mode. The result is applied only if
// no newer reload has been triggered in the meantime; a stale response
// never overwrites a later request's state.
func (c *Controller[T]) Reload(ctx context.Context) error {
	gen := c.generation.Add(1)

	c.mu.Lock()
	c.state = StateLoading
	params := Params{}
	if c.mode == ModePaged {
		params = Params{
			Page:     c.paginator.CurrentPage(),
			PageSize: c.paginator.PageSize(),
			Search:   c.search,
		}
	}
	c.mu.Unlock()

	var (
		items []T
		total int
		err   error
	)
	if c.mode == ModeFetchAll {
		items, err = c.fetcher.FetchAll(ctx, "")
		total = len(items)
	} else {
		var page *Page[T]
		page, err = c.fetcher.Fetch(ctx, params)
		if err == nil {
			items = page.Items
			total = page.Count
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation.Load() {
		// A newer trigger owns the state now.
		return nil
	}

	if err != nil {
		c.state = StateError
		c.err = err
		return err
	}

	c.collection = items
	c.err = nil
	c.state = StateReady
	if c.mode == ModeFetchAll {
		if c.cache != nil {
			c.cache.Put(items)
		}
		total = len(c.visibleLocked())
	}
	c.paginator.SetTotal(total)
	return nil
}

// Close cancels any pending debounced search.
func (c *Controller[T]) Close() {
	c.cancelSearch()
}

func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Rows returns the records currently on screen: always
// paginate(sort(filter(collection))). In paged mode the server already
// did the slicing and the fetched page is returned as-is.
func (c *Controller[T]) Rows() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModePaged {
		return c.collection
	}
	return Paginate(c.visibleLocked(), c.paginator.CurrentPage(), c.paginator.PageSize())
}

// Visible returns the whole filtered and sorted collection before
// pagination, which is what an export should contain. In paged mode
// only the fetched page is available.
func (c *Controller[T]) Visible() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModePaged {
		return c.collection
	}
	return c.visibleLocked()
}

func (c *Controller[T]) visibleLocked() []T {
	filtered := Filter(c.collection, c.filter, c.schema.SearchFields)
	return Sort(filtered, c.sort, c.schema.Compare)
}

// SetFilter applies a local substring filter. Fetch-all mode only; the
// page window is recomputed over the filtered collection.
func (c *Controller[T]) SetFilter(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = query
	c.paginator.SetTotal(len(c.visibleLocked()))
}

// SetSearch records a server-side search query and schedules a reload
// after the debounce window. Rapid keystrokes coalesce into one fetch.
// A changed query restarts from page 1, since the old page number is
// meaningless against a different result set.
func (c *Controller[T]) SetSearch(query string) {
	c.mu.Lock()
	changed := c.search != query
	c.search = query
	if changed {
		c.paginator.First()
	}
	c.mu.Unlock()
	if changed {
		c.debouncedSearch()
	}
}

// SortBy sets the active sort column. Clicking the active column flips
// the direction; a new column starts ascending.
func (c *Controller[T]) SortBy(column string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sort.Column == column {
		if c.sort.Direction == Asc {
			c.sort.Direction = Desc
		} else {
			c.sort.Direction = Asc
		}
		return
	}
	c.sort = SortState{Column: column, Direction: Asc}
}

func (c *Controller[T]) Sort() SortState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sort
}

// PageInfo reports the current window: page, total pages, the
// 1-indexed item range, and the total item count.
func (c *Controller[T]) PageInfo() (page, totalPages, start, end, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	start, end = c.paginator.ItemRange()
	return c.paginator.CurrentPage(), c.paginator.TotalPages(), start, end, c.paginator.TotalItems()
}

// GoTo navigates to a page. In paged mode a successful move refetches.
func (c *Controller[T]) GoTo(ctx context.Context, page int) bool {
	c.mu.Lock()
	moved := c.paginator.GoTo(page)
	c.mu.Unlock()
	if moved && c.mode == ModePaged {
		_ = c.Reload(ctx)
	}
	return moved
}

func (c *Controller[T]) Next(ctx context.Context) bool {
	return c.goToRelative(ctx, func(p *Paginator) bool { return p.Next() })
}

func (c *Controller[T]) Prev(ctx context.Context) bool {
	return c.goToRelative(ctx, func(p *Paginator) bool { return p.Prev() })
}

func (c *Controller[T]) First(ctx context.Context) bool {
	return c.goToRelative(ctx, func(p *Paginator) bool { return p.First() })
}

func (c *Controller[T]) Last(ctx context.Context) bool {
	return c.goToRelative(ctx, func(p *Paginator) bool { return p.Last() })
}

func (c *Controller[T]) goToRelative(ctx context.Context, move func(*Paginator) bool) bool {
	c.mu.Lock()
	moved := move(c.paginator)
	c.mu.Unlock()
	if moved && c.mode == ModePaged {
		_ = c.Reload(ctx)
	}
	return moved
}

// SetPageSize resizes the page window, clamping the current page into
// the new range. In paged mode the new window is refetched.
func (c *Controller[T]) SetPageSize(ctx context.Context, size int) {
	c.mu.Lock()
	c.paginator.SetPageSize(size)
	c.mu.Unlock()
	if c.mode == ModePaged {
		_ = c.Reload(ctx)
	}
}
