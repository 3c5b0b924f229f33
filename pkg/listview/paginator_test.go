package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginator_TwelveItemsPageSizeFive(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(12)

	assert.Equal(t, 3, p.TotalPages())

	assert.True(t, p.GoTo(3))
	start, end := p.ItemRange()
	assert.Equal(t, 11, start)
	assert.Equal(t, 12, end)
}

func TestPaginator_EmptyCollection(t *testing.T) {
	p := NewPaginator(10)
	p.SetTotal(0)

	assert.Equal(t, 1, p.TotalPages())
	assert.Equal(t, 1, p.CurrentPage())

	start, end := p.ItemRange()
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestPaginator_GoToOutOfRangeIsNoOp(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(12)

	assert.False(t, p.GoTo(0))
	assert.False(t, p.GoTo(4))
	assert.Equal(t, 1, p.CurrentPage())
}

func TestPaginator_Navigation(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(12)

	assert.True(t, p.Next())
	assert.Equal(t, 2, p.CurrentPage())

	assert.True(t, p.Last())
	assert.Equal(t, 3, p.CurrentPage())

	// Past the last page is a no-op.
	assert.False(t, p.Next())
	assert.Equal(t, 3, p.CurrentPage())

	assert.True(t, p.First())
	assert.Equal(t, 1, p.CurrentPage())

	assert.False(t, p.Prev())
	assert.Equal(t, 1, p.CurrentPage())
}

func TestPaginator_SetPageSizeClampsInsteadOfResetting(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(12)
	p.GoTo(3)

	// 12 items at size 10 leaves 2 pages; page 3 clamps to 2, not 1.
	p.SetPageSize(10)
	assert.Equal(t, 2, p.TotalPages())
	assert.Equal(t, 2, p.CurrentPage())

	// Growing the page count leaves the current page alone.
	p.SetPageSize(5)
	assert.Equal(t, 3, p.TotalPages())
	assert.Equal(t, 2, p.CurrentPage())
}

func TestPaginator_SetTotalClampsCurrentPage(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(12)
	p.GoTo(3)

	p.SetTotal(4)
	assert.Equal(t, 1, p.CurrentPage())
	assert.Equal(t, 1, p.TotalPages())
}

func TestPaginator_ItemRangeClampedToTotal(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(7)
	p.GoTo(2)

	start, end := p.ItemRange()
	assert.Equal(t, 6, start)
	assert.Equal(t, 7, end)
}

func TestPaginator_InvalidPageSizeIgnored(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(12)

	p.SetPageSize(0)
	assert.Equal(t, 5, p.PageSize())
}
