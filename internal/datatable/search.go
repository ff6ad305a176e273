package datatable

import "strings"

// ApplySearch keeps every record where at least one field's string form
// contains term, case-insensitively. Relative order is preserved.
//
// fieldsOf lists the searchable field values of a record. An empty term
// returns records unchanged.
func ApplySearch[T any](records []T, term string, fieldsOf func(T) []any) []T {
	if term == "" || fieldsOf == nil {
		return records
	}

	lower := strings.ToLower(term)
	result := make([]T, 0, len(records))
	for _, r := range records {
		for _, v := range fieldsOf(r) {
			if containsFold(v, lower) {
				result = append(result, r)
				break
			}
		}
	}
	return result
}

// columnFields returns a fieldsOf function that reads every column's value.
func columnFields[T any](columns []Column[T]) func(T) []any {
	return func(r T) []any {
		values := make([]any, len(columns))
		for i, col := range columns {
			values[i] = col.valueOf(r)
		}
		return values
	}
}
