package datatable

// Table is a stateful table: it owns the search term, the sort state and,
// unless the caller controls it, the current page.
//
// Table is not safe for concurrent use; each interaction is expected to
// finish its re-derivation before the next one starts.
type Table[T any] struct {
	opts   Options[T]
	search string
	sort   SortState
	page   int
}

// New creates a Table. An initial sort that does not name a sortable column
// is ignored.
func New[T any](opts Options[T], initial SortState) *Table[T] {
	t := &Table[T]{opts: opts, page: 1}
	if ValidSort(initial, opts.Columns) {
		t.sort = initial
	}
	return t
}

// Search returns the current search term.
func (t *Table[T]) Search() string { return t.search }

// Sort returns the current sort state.
func (t *Table[T]) Sort() SortState { return t.sort }

// Page returns the current page.
func (t *Table[T]) Page() int {
	if t.controlled() {
		return t.opts.Pagination.CurrentPage
	}
	return t.page
}

// controlled reports whether the caller drives page transitions.
func (t *Table[T]) controlled() bool {
	return t.opts.Pagination.CurrentPage > 0
}

// SetSearch replaces the search term. It is a no-op when search is disabled.
func (t *Table[T]) SetSearch(term string) {
	if t.opts.DisableSearch {
		return
	}
	t.search = term
}

// ToggleSort applies a header click on column key.
func (t *Table[T]) ToggleSort(key string) SortState {
	t.sort = ToggleSort(t.sort, key, t.opts.Columns)
	return t.sort
}

// SetPagination replaces the pagination config, e.g. after the caller moved
// to a new page or fetched a new total.
func (t *Table[T]) SetPagination(p Pagination) {
	t.opts.Pagination = p
}

// GoToPage selects page, clamped to [1, pageCount] for records, and
// notifies OnPageChange. When the caller controls the page only the
// notification happens; the caller is expected to supply the new page.
func (t *Table[T]) GoToPage(records []T, page int) int {
	count := t.View(records).Controls.PageCount
	page = max(1, min(page, count))

	if !t.controlled() {
		t.page = page
	}
	if t.opts.Pagination.OnPageChange != nil {
		t.opts.Pagination.OnPageChange(page)
	}
	return page
}

// Next moves one page forward.
func (t *Table[T]) Next(records []T) int {
	return t.GoToPage(records, t.Page()+1)
}

// Prev moves one page back.
func (t *Table[T]) Prev(records []T) int {
	return t.GoToPage(records, t.Page()-1)
}

// View derives the current view of records.
func (t *Table[T]) View(records []T) View[T] {
	opts := t.opts
	opts.Pagination.CurrentPage = t.Page()
	return Build(records, opts, t.search, t.sort)
}
