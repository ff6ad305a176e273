package datatable

// DefaultEmptyMessage is shown in the placeholder row of an empty view.
const DefaultEmptyMessage = "No data available"

// Options configures how records are turned into a View.
type Options[T any] struct {
	Columns []Column[T]

	// DisableSearch hides the search box; search is on by default.
	DisableSearch bool

	// DisableFilter hides the filter button; the button has no behaviour of
	// its own beyond search.
	DisableFilter bool

	Pagination Pagination

	// RowActions renders an extra trailing cell for each row.
	RowActions func(T) any

	// Actions is rendered in the table's header area (e.g. an export button).
	Actions any

	// SearchValues lists the values searched for each record. When nil, the
	// values of every column are searched.
	SearchValues func(T) []any

	EmptyMessage string
}

// HeaderCell is one rendered column header.
type HeaderCell struct {
	Key       string `json:"key"`
	Header    string `json:"header"`
	Sortable  bool   `json:"sortable"`
	Active    bool   `json:"active"`
	Direction string `json:"direction,omitempty"`
	Indicator string `json:"indicator,omitempty"` // "↑" or "↓" on the active sort column
}

// Row is one visible record and its rendered cells.
type Row[T any] struct {
	Record  T
	Cells   []Cell
	Actions any // RowActions output; nil when not configured
}

// View is the fully derived table ready for display.
type View[T any] struct {
	Headers      []HeaderCell
	Rows         []Row[T]
	Empty        bool   // Render a single placeholder row instead of Rows
	EmptyMessage string
	Colspan      int // Width of the placeholder row, including the actions column
	Controls     PageControls
	Sort         SortState
	SearchTerm   string
	Searchable   bool
	Filterable   bool
	HasActions   bool
	Actions      any
	MatchedItems int // Records left after searching, before paging
}

// RenderRow renders one record across columns.
// A column's renderer output is used when present, otherwise the raw value.
func RenderRow[T any](record T, columns []Column[T]) []Cell {
	cells := make([]Cell, len(columns))
	for i, col := range columns {
		value := col.valueOf(record)
		if col.Renderer != nil {
			value = col.Renderer.RenderCell(value, record)
		}
		cells[i] = Cell{Key: col.Key, Value: value}
	}
	return cells
}

// Headers renders the header row for the given sort state.
func Headers[T any](columns []Column[T], state SortState) []HeaderCell {
	headers := make([]HeaderCell, len(columns))
	for i, col := range columns {
		h := HeaderCell{
			Key:      col.Key,
			Header:   col.Header,
			Sortable: col.Sortable,
		}
		if col.Sortable && state.Key == col.Key {
			h.Active = true
			h.Direction = string(state.Direction)
			h.Indicator = state.Indicator(col.Key)
		}
		headers[i] = h
	}
	return headers
}

// Build derives a view: search, then sort, then paginate, then render.
// records is never modified.
func Build[T any](records []T, opts Options[T], search string, state SortState) View[T] {
	searchable := !opts.DisableSearch
	if !searchable {
		search = ""
	}
	if !ValidSort(state, opts.Columns) {
		state = SortState{}
	}

	fields := opts.SearchValues
	if fields == nil {
		fields = columnFields(opts.Columns)
	}

	// The mode is fixed by the records as given, before search narrows them.
	// Server-mode records are already the searched page.
	pagination := opts.Pagination
	server := pagination.ServerMode(len(records))

	filtered := records
	if !server {
		filtered = ApplySearch(records, search, fields)
		pagination.TotalItems = 0
	}
	sorted := ApplySort(filtered, state, opts.Columns)
	page := sorted
	if !server {
		page = Paginate(sorted, pagination)
	}
	controls := pagination.Controls(len(sorted))

	rows := make([]Row[T], len(page))
	for i, r := range page {
		row := Row[T]{Record: r, Cells: RenderRow(r, opts.Columns)}
		if opts.RowActions != nil {
			row.Actions = opts.RowActions(r)
		}
		rows[i] = row
	}

	colspan := len(opts.Columns)
	if opts.RowActions != nil {
		colspan++
	}

	emptyMsg := opts.EmptyMessage
	if emptyMsg == "" {
		emptyMsg = DefaultEmptyMessage
	}

	return View[T]{
		Headers:      Headers(opts.Columns, state),
		Rows:         rows,
		Empty:        len(rows) == 0,
		EmptyMessage: emptyMsg,
		Colspan:      max(colspan, 1),
		Controls:     controls,
		Sort:         state,
		SearchTerm:   search,
		Searchable:   searchable,
		Filterable:   !opts.DisableFilter,
		HasActions:   opts.RowActions != nil,
		Actions:      opts.Actions,
		MatchedItems: controls.TotalItems,
	}
}

// VisibleRows returns the number of body rows to draw, counting the
// placeholder row of an empty view.
func (v View[T]) VisibleRows() int {
	if v.Empty {
		return 1
	}
	return len(v.Rows)
}
