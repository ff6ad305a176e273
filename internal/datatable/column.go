package datatable

import "cmp"

// Record is the loosely-typed record shape used by callers that do not have
// a Go struct for their rows (JSON payloads, SQL rows, CSV files).
type Record = map[string]any

// CellRenderer owns the presentation of a single column.
// It receives the raw column value and the full record, so composite cells
// (e.g. "name <email>") can be derived from several fields.
type CellRenderer[T any] interface {
	RenderCell(value any, record T) any
}

// RenderFunc adapts an ordinary function to the CellRenderer interface.
type RenderFunc[T any] func(value any, record T) any

// RenderCell calls f(value, record).
func (f RenderFunc[T]) RenderCell(value any, record T) any {
	return f(value, record)
}

// Column describes how one field of a record is extracted, labelled and
// displayed.
type Column[T any] struct {
	Key      string // Stable identifier, used for sort state and URLs
	Header   string // Display label
	Sortable bool

	// Value extracts the raw field value. A nil Value yields nil for every record.
	Value func(T) any

	// Compare orders two records by this column. When nil, values returned
	// by Value are compared by their natural ordering.
	Compare func(a, b T) int

	// Renderer, if set, fully owns the cell's presentation.
	Renderer CellRenderer[T]
}

// valueOf returns the raw value of the column for record.
func (c Column[T]) valueOf(record T) any {
	if c.Value == nil {
		return nil
	}
	return c.Value(record)
}

// WithRenderer returns a copy of c that renders cells with fn.
func (c Column[T]) WithRenderer(fn func(value any, record T) any) Column[T] {
	c.Renderer = RenderFunc[T](fn)
	return c
}

// Field builds a sortable column from a typed accessor.
// Sorting uses the accessor's natural ordering directly, without any
// runtime type inspection.
func Field[T any, V cmp.Ordered](key, header string, get func(T) V) Column[T] {
	return Column[T]{
		Key:      key,
		Header:   header,
		Sortable: true,
		Value:    func(r T) any { return get(r) },
		Compare:  func(a, b T) int { return cmp.Compare(get(a), get(b)) },
	}
}

// MapColumn builds a column over map-shaped records.
// Missing keys yield nil values.
func MapColumn(key, header string, sortable bool) Column[Record] {
	return Column[Record]{
		Key:      key,
		Header:   header,
		Sortable: sortable,
		Value:    func(r Record) any { return r[key] },
	}
}

// MapFields returns every value of a map-shaped record, for searching across
// fields that have no column.
func MapFields(r Record) []any {
	fields := make([]any, 0, len(r))
	for _, v := range r {
		fields = append(fields, v)
	}
	return fields
}

// findColumn returns the column with the given key.
func findColumn[T any](columns []Column[T], key string) (Column[T], bool) {
	for _, col := range columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column[T]{}, false
}

// Cell is one rendered table cell.
type Cell struct {
	Key   string // Column key
	Value any    // Renderer output, or the raw value when the column has no renderer
}

// String coerces the cell value for text output. Nil renders as "".
func (c Cell) String() string {
	s, _ := stringify(c.Value)
	return s
}

