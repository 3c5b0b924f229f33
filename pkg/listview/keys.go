package listview

import "context"

// Key is a pagination keyboard binding.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyHome
	KeyEnd
)

// HandleKey maps arrow and Home/End keys to page navigation. Keys are
// ignored while a text input has focus so paging never hijacks typing.
// It reports whether the page changed.
func (c *Controller[T]) HandleKey(ctx context.Context, key Key, inputFocused bool) bool {
	if inputFocused {
		return false
	}

	switch key {
	case KeyLeft:
		return c.Prev(ctx)
	case KeyRight:
		return c.Next(ctx)
	case KeyHome:
		return c.First(ctx)
	case KeyEnd:
		return c.Last(ctx)
	default:
		return false
	}
}
