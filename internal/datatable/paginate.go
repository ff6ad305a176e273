package datatable

// DefaultItemsPerPage is used when Pagination.ItemsPerPage is not positive.
const DefaultItemsPerPage = 10

// pageWindowSize is the number of numbered page buttons shown at once.
const pageWindowSize = 5

// Pagination configures paging. The zero value pages locally, ten rows at a
// time, starting on page 1.
type Pagination struct {
	ItemsPerPage int

	// TotalItems overrides the item count used for page math. Zero means
	// "count the records". Any other value that differs from the number of
	// records switches to server mode: the records are the page.
	TotalItems int

	// CurrentPage, when positive, puts the caller in control of the page.
	CurrentPage int

	// OnPageChange is notified with the newly selected page number.
	OnPageChange func(page int)
}

// perPage returns the effective page size.
func (p Pagination) perPage() int {
	if p.ItemsPerPage <= 0 {
		return DefaultItemsPerPage
	}
	return p.ItemsPerPage
}

// page returns the effective current page.
func (p Pagination) page() int {
	if p.CurrentPage < 1 {
		return 1
	}
	return p.CurrentPage
}

// ServerMode reports whether records of length n are a pre-fetched page.
func (p Pagination) ServerMode(n int) bool {
	return p.TotalItems > 0 && p.TotalItems != n
}

// total returns the item count used for page math.
func (p Pagination) total(n int) int {
	if p.TotalItems > 0 {
		return p.TotalItems
	}
	return n
}

// PageCount returns ceil(totalItems / itemsPerPage), never less than 1.
func PageCount(totalItems, itemsPerPage int) int {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}
	if totalItems <= 0 {
		return 1
	}
	return (totalItems + itemsPerPage - 1) / itemsPerPage
}

// Paginate returns the records for the current page.
//
// In client mode it slices records[(page-1)*n : page*n]; a page past the end
// yields an empty slice. In server mode records are returned as-is.
func Paginate[T any](records []T, p Pagination) []T {
	if p.ServerMode(len(records)) {
		return records
	}

	n := p.perPage()
	start := (p.page() - 1) * n
	if start >= len(records) {
		return []T{}
	}
	end := min(start+n, len(records))
	return records[start:end]
}

// PageWindow returns the numbered page buttons to show.
//
// Up to five pages are shown. When there are more, the window is centred on
// current and clamped to the first or last five pages near either end.
func PageWindow(current, pageCount int) []int {
	if pageCount < 1 {
		pageCount = 1
	}

	var first int
	switch {
	case pageCount <= pageWindowSize:
		first = 1
	case current <= 3:
		first = 1
	case current >= pageCount-2:
		first = pageCount - pageWindowSize + 1
	default:
		first = current - 2
	}

	size := min(pageWindowSize, pageCount)
	pages := make([]int, size)
	for i := range pages {
		pages[i] = first + i
	}
	return pages
}

// PageControls describes the pagination bar under a table.
type PageControls struct {
	CurrentPage  int   `json:"currentPage"`
	PageCount    int   `json:"pageCount"`
	TotalItems   int   `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	Pages        []int `json:"pages"`
	HasPrev      bool  `json:"hasPrev"`
	HasNext      bool  `json:"hasNext"`
	Visible      bool  `json:"visible"` // Controls render only with more than one page
}

// Controls computes the pagination bar for records of length n.
func (p Pagination) Controls(n int) PageControls {
	total := p.total(n)
	count := PageCount(total, p.perPage())
	current := p.page()
	return PageControls{
		CurrentPage:  current,
		PageCount:    count,
		TotalItems:   total,
		ItemsPerPage: p.perPage(),
		Pages:        PageWindow(current, count),
		HasPrev:      current > 1,
		HasNext:      current < count,
		Visible:      count > 1,
	}
}
