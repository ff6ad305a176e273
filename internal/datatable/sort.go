package datatable

import (
	"slices"
	"strings"
)

// Direction is the order of the active sort column.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortState is the single active sort column. The zero value means none.
type SortState struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// IsZero reports whether no sort is active.
func (s SortState) IsZero() bool {
	return s.Key == ""
}

// Indicator returns the header arrow for the column with the given key.
func (s SortState) Indicator(key string) string {
	if s.Key == "" || s.Key != key {
		return ""
	}
	if s.Direction == Descending {
		return "↓"
	}
	return "↑"
}

// ParseDirection maps "desc" (any case) to Descending and everything else to
// Ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, "desc") {
		return Descending
	}
	return Ascending
}

// ToggleSort returns the sort state after clicking the header of column key.
//
// A different column starts ascending; the active column flips between
// ascending and descending. The cycle never returns to unsorted. Keys that
// are unknown or not sortable leave the state unchanged.
func ToggleSort[T any](current SortState, key string, columns []Column[T]) SortState {
	col, ok := findColumn(columns, key)
	if !ok || !col.Sortable {
		return current
	}

	if current.Key == key && current.Direction == Ascending {
		return SortState{Key: key, Direction: Descending}
	}
	return SortState{Key: key, Direction: Ascending}
}

// ValidSort reports whether state names a sortable column.
func ValidSort[T any](state SortState, columns []Column[T]) bool {
	if state.IsZero() {
		return false
	}
	col, ok := findColumn(columns, state.Key)
	return ok && col.Sortable
}

// ApplySort returns a new slice ordered by the active sort column.
//
// The sort is stable: records that compare equal keep their input order.
// With no active sort, or a key that does not name a sortable column, the
// input order is returned unchanged.
func ApplySort[T any](records []T, state SortState, columns []Column[T]) []T {
	if !ValidSort(state, columns) {
		return records
	}
	col, _ := findColumn(columns, state.Key)

	compare := col.Compare
	if compare == nil {
		compare = func(a, b T) int {
			return compareValues(col.valueOf(a), col.valueOf(b))
		}
	}

	sorted := slices.Clone(records)
	if state.Direction == Descending {
		slices.SortStableFunc(sorted, func(a, b T) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(sorted, compare)
	}
	return sorted
}
