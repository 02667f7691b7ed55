package pagination

import "math"

// DefaultPerPage is the fixed page size of every list view
const DefaultPerPage = 10

// DefaultVisiblePages is the width of the page-number window
const DefaultVisiblePages = 5

// Page is one slice of a paginated list plus what a view needs to draw its links.
type Page[T any] struct {
	Items   []T
	Page    int
	PerPage int
	Total   int64
	Pages   int
	Range   []int
}

// Normalize clamps a requested page number to at least 1.
func Normalize(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Offset returns the row offset of page. A page too large to address saturates at
// math.MaxInt so the query lands past the last row instead of wrapping.
func Offset(page, perPage int) int {
	page = Normalize(page)
	if perPage <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

// TotalPages returns the number of pages needed for total rows.
func TotalPages(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// New builds a page. Items may be empty when page is past the end.
func New[T any](items []T, page, perPage int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	page = Normalize(page)
	pages := TotalPages(total, perPage)
	return Page[T]{
		Items:   items,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		Range:   PageRange(page, pages, DefaultVisiblePages),
	}
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool {
	return p.Page < p.Pages
}

// PrevNum is the previous page number.
func (p Page[T]) PrevNum() int {
	return p.Page - 1
}

// NextNum is the next page number.
func (p Page[T]) NextNum() int {
	return p.Page + 1
}

// PageRange returns up to visible page numbers centred on current and
// clamped to [1, total]. Near either end the window shifts instead of shrinking.
func PageRange(current, total, visible int) []int {
	current = min(current, total)
	half := visible / 2
	start := max(1, current-half)
	end := min(total, current+half)

	if current-half < 1 {
		end = min(total, visible)
	} else if current+half > total {
		start = max(1, total-visible+1)
	}

	if end < start {
		return []int{}
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// Nav is the item-independent part of a page, used to draw page links.
type Nav struct {
	Page  int
	Pages int
	Range []int
}

// Nav drops the items so templates can share one set of page links.
func (p Page[T]) Nav() Nav {
	return Nav{Page: p.Page, Pages: p.Pages, Range: p.Range}
}

func (n Nav) HasPrev() bool { return n.Page > 1 }

func (n Nav) HasNext() bool { return n.Page < n.Pages }

func (n Nav) PrevNum() int { return n.Page - 1 }

func (n Nav) NextNum() int { return n.Page + 1 }
