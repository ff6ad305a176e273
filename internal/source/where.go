package source

import (
	"fmt"
	"strings"
)

// WhereBuilder assembles a parameterised WHERE clause for PostgreSQL.
// Conditions are joined with AND; placeholders are numbered from $1.
type WhereBuilder struct {
	conditions []string
	args       []any
	argIndex   int
}

// NewWhereBuilder creates an empty builder.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{argIndex: 1}
}

// Add appends "column = $n". Empty values are skipped.
func (wb *WhereBuilder) Add(column, value string) {
	if value == "" {
		return
	}
	wb.conditions = append(wb.conditions, fmt.Sprintf("%s = $%d", column, wb.argIndex))
	wb.args = append(wb.args, value)
	wb.argIndex++
}

// AddSearch appends a case-insensitive contains match across columns,
// OR'ed together and sharing one placeholder. Non-text columns are cast to
// text so numbers and dates match by their string form.
func (wb *WhereBuilder) AddSearch(query string, columns []ColumnSpec) {
	if query == "" || len(columns) == 0 {
		return
	}

	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		if !col.Searchable() {
			continue
		}
		expr := quoteIdentifier(col.dbColumn())
		if !col.Text {
			expr += "::text"
		}
		parts = append(parts, fmt.Sprintf("%s ILIKE $%d", expr, wb.argIndex))
	}
	if len(parts) == 0 {
		return
	}

	wb.conditions = append(wb.conditions, "("+strings.Join(parts, " OR ")+")")
	wb.args = append(wb.args, "%"+escapeLike(query)+"%")
	wb.argIndex++
}

// Build returns the clause (with a leading " WHERE ") and its arguments.
// With no conditions it returns "" and nil.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(wb.conditions, " AND "), wb.args
}

// NextArgIndex returns the next free placeholder number.
func (wb *WhereBuilder) NextArgIndex() int {
	return wb.argIndex
}

// quoteIdentifier quotes a SQL identifier to prevent injection.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// escapeLike escapes LIKE wildcards so a search for "50%" is literal.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// toDBColumnName converts a display name to a database column name.
// "Transaction ID" -> "transaction_id"
func toDBColumnName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}
