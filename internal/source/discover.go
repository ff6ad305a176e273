package source

import (
	"context"
	"fmt"
	"strings"
)

// describeSQL lists a table's columns in ordinal order with a primary key
// flag. The table may be schema-qualified; unqualified names resolve
// against current_schema().
const describeSQL = `SELECT c.column_name, c.data_type, EXISTS (
	SELECT 1
	FROM information_schema.table_constraints tc
	JOIN information_schema.key_column_usage k
		ON k.constraint_schema = tc.constraint_schema
		AND k.constraint_name = tc.constraint_name
	WHERE tc.constraint_type = 'PRIMARY KEY'
		AND tc.table_schema = c.table_schema
		AND tc.table_name = c.table_name
		AND k.column_name = c.column_name
) AS is_primary
FROM information_schema.columns c
WHERE c.table_schema = COALESCE(NULLIF($1, ''), current_schema()) AND c.table_name = $2
ORDER BY c.ordinal_position`

// DescribeColumns reads the column list of table from information_schema.
// Returns an error if the table has no visible columns.
func DescribeColumns(ctx context.Context, db Querier, table string) ([]ColumnSpec, error) {
	schemaName, tableName := splitTableName(table)

	rows, err := db.Query(ctx, describeSQL, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", table, err)
	}
	defer rows.Close()

	var columns []ColumnSpec
	for rows.Next() {
		var (
			name, dataType string
			primary        bool
		)
		if err := rows.Scan(&name, &dataType, &primary); err != nil {
			return nil, fmt.Errorf("describe %s: %w", table, err)
		}
		columns = append(columns, ColumnSpec{
			Key:      name,
			DBColumn: name,
			Text:     isTextType(dataType),
			Primary:  primary,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("describe %s: %w", table, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("describe %s: relation does not exist", table)
	}
	return columns, nil
}

// splitTableName splits "schema.table" into its parts.
func splitTableName(table string) (schemaName, tableName string) {
	if i := strings.IndexByte(table, '.'); i >= 0 {
		return table[:i], table[i+1:]
	}
	return "", table
}

// isTextType reports whether an information_schema data_type can be
// matched with ILIKE without a cast.
func isTextType(dataType string) bool {
	switch strings.ToLower(dataType) {
	case "text", "character varying", "character", "citext", "name":
		return true
	}
	return false
}

// quoteTable quotes a possibly schema-qualified table name.
func quoteTable(table string) string {
	schemaName, tableName := splitTableName(table)
	if schemaName == "" {
		return quoteIdentifier(tableName)
	}
	return quoteIdentifier(schemaName) + "." + quoteIdentifier(tableName)
}
