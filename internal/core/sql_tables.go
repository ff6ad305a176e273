package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JonMunkholm/datatable/internal/datatable"
	"github.com/JonMunkholm/datatable/internal/source"
)

// DatabaseGroup is the sidebar group for tables backed by PostgreSQL.
const DatabaseGroup = "Database"

// RegisterSQLTables registers one server-paginated table per name, with
// columns read from information_schema. Tables that cannot be described
// are skipped and reported in the returned error; the rest stay registered.
func RegisterSQLTables(ctx context.Context, db source.Querier, tables []string) ([]string, error) {
	var (
		keys   []string
		failed []string
	)
	for _, table := range tables {
		key, err := registerSQLTable(ctx, db, table)
		if err != nil {
			slog.Warn("skipping sql table", "table", table, "error", err)
			failed = append(failed, table)
			continue
		}
		keys = append(keys, key)
	}
	if len(failed) > 0 {
		return keys, fmt.Errorf("register sql tables: %d failed: %s", len(failed), strings.Join(failed, ", "))
	}
	return keys, nil
}

func registerSQLTable(ctx context.Context, db source.Querier, table string) (string, error) {
	specs, err := source.DescribeColumns(ctx, db, table)
	if err != nil {
		return "", err
	}
	src, err := source.NewPostgres(db, table, specs)
	if err != nil {
		return "", err
	}

	key := "sql_" + source.ColumnKey(table)
	if _, exists := Get(key); exists {
		return "", fmt.Errorf("table key %q already registered", key)
	}

	columns := make([]datatable.Column[Row], len(specs))
	for i, spec := range specs {
		columns[i] = datatable.MapColumn(spec.Key, headerFor(spec.Key), true)
	}

	Register(TableDefinition{
		Info: TableInfo{
			Key:   key,
			Group: DatabaseGroup,
			Label: table,
		},
		Columns:       columns,
		Source:        src,
		DisableFilter: true,
	})
	return key, nil
}

// headerFor turns a column name like "placed_at" into "Placed At".
func headerFor(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
