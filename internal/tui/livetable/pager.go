package livetable

import (
	"github.com/charmbracelet/bubbles/paginator"
)

// DefaultPageSize is the number of rows shown per page unless configured.
const DefaultPageSize = 20

// PagingMode selects the page count and cursor clamp arithmetic.
type PagingMode int

const (
	// PagingStrict never produces an empty page and keeps the cursor on a
	// real row while navigating.
	PagingStrict PagingMode = iota
	// PagingLegacy computes the last page as N/P, which yields an empty
	// trailing page when N is a multiple of P, and lets the cursor run to
	// P before the render step pulls it back onto the last row.
	PagingLegacy
)

func (m PagingMode) String() string {
	if m == PagingLegacy {
		return "legacy"
	}
	return "strict"
}

// ParsePagingMode maps a config value to a PagingMode. Unknown values fall
// back to strict.
func ParsePagingMode(s string) PagingMode {
	if s == "legacy" {
		return PagingLegacy
	}
	return PagingStrict
}

// PageCount returns the zero-based index of the last page for n items.
func PageCount(n, pageSize int, mode PagingMode) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	if mode == PagingLegacy {
		return n / pageSize
	}
	return (n+pageSize-1)/pageSize - 1
}

// VisibleSlice returns the items on the given page, truncated at the end of
// items. Pages past the end yield an empty slice.
func VisibleSlice[T any](items []T, page, pageSize int) []T {
	if page < 0 || pageSize <= 0 {
		return nil
	}
	start := page * pageSize
	if start >= len(items) {
		return items[len(items):]
	}
	end := min(start+pageSize, len(items))
	return items[start:end]
}

// ClampPage clamps page to [0, pageCount].
func ClampPage(page, pageCount int) int {
	return clamp(page, 0, pageCount)
}

// ClampRow clamps row to [0, limit].
func ClampRow(row, limit int) int {
	return clamp(row, 0, limit)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Pager tracks the current page and row cursor over a fixed number of items.
type Pager struct {
	p      paginator.Model
	total  int
	last   int
	mode   PagingMode
	cursor int
}

// NewPager creates a pager positioned on the first row of the first page.
func NewPager(total, pageSize int, mode PagingMode) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = pageSize

	last := PageCount(total, pageSize, mode)
	p.TotalPages = last + 1

	return &Pager{p: p, total: total, last: last, mode: mode}
}

// Page returns the current zero-based page.
func (pg *Pager) Page() int { return pg.p.Page }

// PageCount returns the zero-based index of the last page.
func (pg *Pager) PageCount() int { return pg.last }

// PageSize returns the number of rows per page.
func (pg *Pager) PageSize() int { return pg.p.PerPage }

// Cursor returns the raw row cursor.
func (pg *Pager) Cursor() int { return pg.cursor }

// Mode returns the paging arithmetic in use.
func (pg *Pager) Mode() PagingMode { return pg.mode }

// Bounds returns the [start, end) range of the current page in the data
// source.
func (pg *Pager) Bounds() (int, int) {
	start, end := pg.p.GetSliceBounds(pg.total)
	if start > end {
		return end, end
	}
	return start, end
}

// ItemsOnPage returns how many items the current page shows.
func (pg *Pager) ItemsOnPage() int {
	start, end := pg.Bounds()
	return end - start
}

func (pg *Pager) setPage(page int) {
	pg.p.Page = ClampPage(page, pg.last)
	if pg.mode == PagingStrict {
		pg.cursor = ClampRow(pg.cursor, pg.rowLimit())
	}
}

// NextPage moves one page forward, stopping at the last page.
func (pg *Pager) NextPage() { pg.setPage(pg.p.Page + 1) }

// PrevPage moves one page back, stopping at the first page.
func (pg *Pager) PrevPage() { pg.setPage(pg.p.Page - 1) }

// FirstPage jumps to page 0.
func (pg *Pager) FirstPage() { pg.setPage(0) }

// LastPage jumps to the last page.
func (pg *Pager) LastPage() { pg.setPage(pg.last) }

// CursorDown moves the cursor one row down.
func (pg *Pager) CursorDown() { pg.cursor = ClampRow(pg.cursor+1, pg.rowLimit()) }

// CursorUp moves the cursor one row up.
func (pg *Pager) CursorUp() { pg.cursor = ClampRow(pg.cursor-1, pg.rowLimit()) }

// rowLimit is the key-handling clamp bound for the cursor.
func (pg *Pager) rowLimit() int {
	if pg.mode == PagingLegacy {
		return pg.p.PerPage
	}
	return max(pg.ItemsOnPage()-1, 0)
}

// Settle pulls the cursor back onto the last row of the current page. The
// render step calls it before picking the selected item.
func (pg *Pager) Settle() {
	n := pg.ItemsOnPage()
	for pg.cursor >= n && pg.cursor > 0 {
		pg.cursor--
	}
}

// Index returns the data source index of the settled cursor, or -1 when the
// current page is empty.
func (pg *Pager) Index() int {
	n := pg.ItemsOnPage()
	if n == 0 {
		return -1
	}
	start, _ := pg.Bounds()
	return start + min(pg.cursor, n-1)
}
