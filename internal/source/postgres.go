package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/datatable/internal/datatable"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the subset of *pgxpool.Pool used by Postgres.
// Satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ColumnSpec maps a table column key to its database column.
type ColumnSpec struct {
	Key      string // Record key and sort key
	DBColumn string // Database column (derived from Key if empty)
	Text     bool   // Column is textual; others are cast for search
	NoSearch bool   // Exclude from search
	Primary  bool   // Part of the primary key; orders ties between pages
}

func (c ColumnSpec) dbColumn() string {
	if c.DBColumn != "" {
		return c.DBColumn
	}
	return toDBColumnName(c.Key)
}

// Searchable reports whether the column takes part in search.
func (c ColumnSpec) Searchable() bool { return !c.NoSearch }

// Postgres is a server-mode source backed by one table.
type Postgres struct {
	db      Querier
	table   string
	columns []ColumnSpec
}

// NewPostgres creates a source over table. At least one column is required;
// the first column is the default sort.
func NewPostgres(db Querier, table string, columns []ColumnSpec) (*Postgres, error) {
	if table == "" {
		return nil, fmt.Errorf("postgres source: table name is required")
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("postgres source %s: at least one column is required", table)
	}
	return &Postgres{db: db, table: table, columns: columns}, nil
}

// Mode returns ModeServer.
func (p *Postgres) Mode() Mode { return ModeServer }

// Count returns the unfiltered row count.
func (p *Postgres) Count(ctx context.Context) (int64, error) {
	var n int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTable(p.table))
	if err := p.db.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return n, nil
}

// Fetch returns one page of rows plus the total matching the search.
// A page past the end is clamped to the last page.
func (p *Postgres) Fetch(ctx context.Context, q Query) (Result, error) {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = datatable.DefaultItemsPerPage
	}

	countSQL, countArgs := p.countQuery(q.Search)
	var total int64
	if err := p.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return Result{}, fmt.Errorf("count rows: %w", err)
	}

	page := max(q.Page, 1)
	totalPages := datatable.PageCount(int(total), pageSize)
	if page > totalPages {
		page = totalPages
	}

	selectSQL, selectArgs := p.selectQuery(q.Search, q.Sort, pageSize, (page-1)*pageSize)
	rows, err := p.db.Query(ctx, selectSQL, selectArgs...)
	if err != nil {
		return Result{}, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	var records []datatable.Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return Result{}, fmt.Errorf("read row values: %w", err)
		}

		record := make(datatable.Record, len(p.columns))
		for i, col := range p.columns {
			if i < len(values) {
				record[col.Key] = normalizeValue(values[i])
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("rows error: %w", err)
	}

	return Result{Rows: records, Total: total, Page: page}, nil
}

// countQuery builds the filtered COUNT(*) statement.
func (p *Postgres) countQuery(search string) (string, []any) {
	wb := NewWhereBuilder()
	wb.AddSearch(search, p.columns)
	where, args := wb.Build()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", quoteTable(p.table), where), args
}

// selectQuery builds the paged SELECT statement.
func (p *Postgres) selectQuery(search string, sort datatable.SortState, limit, offset int) (string, []any) {
	wb := NewWhereBuilder()
	wb.AddSearch(search, p.columns)
	where, args := wb.Build()

	cols := make([]string, len(p.columns))
	for i, col := range p.columns {
		cols[i] = quoteIdentifier(col.dbColumn())
	}

	argIndex := wb.NextArgIndex()
	query := fmt.Sprintf(
		"SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		strings.Join(cols, ", "),
		quoteTable(p.table),
		where,
		p.orderBy(sort),
		argIndex,
		argIndex+1,
	)
	return query, append(args, limit, offset)
}

// orderBy resolves the sort to an ORDER BY expression, defaulting to the
// first column ascending. Primary key columns (or the first column when
// none are marked) follow as tiebreaks so LIMIT/OFFSET pages never
// overlap.
func (p *Postgres) orderBy(sort datatable.SortState) string {
	col := p.columns[0]
	dir := "asc"
	if !sort.IsZero() {
		for _, c := range p.columns {
			if c.Key == sort.Key {
				col = c
				if sort.Direction == datatable.Descending {
					dir = "desc"
				}
				break
			}
		}
	}

	terms := []string{fmt.Sprintf("%s %s", quoteIdentifier(col.dbColumn()), dir)}
	for _, c := range p.tiebreak() {
		if c.dbColumn() != col.dbColumn() {
			terms = append(terms, quoteIdentifier(c.dbColumn())+" asc")
		}
	}
	return strings.Join(terms, ", ")
}

// tiebreak returns the primary key columns, or the first column.
func (p *Postgres) tiebreak() []ColumnSpec {
	var keys []ColumnSpec
	for _, c := range p.columns {
		if c.Primary {
			keys = append(keys, c)
		}
	}
	if len(keys) == 0 {
		return p.columns[:1]
	}
	return keys
}

// normalizeValue converts pgx wire types into plain Go values the engine
// knows how to compare and display.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case pgtype.Numeric:
		if !val.Valid {
			return nil
		}
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case pgtype.Text:
		if !val.Valid {
			return nil
		}
		return val.String
	case pgtype.Date:
		if !val.Valid {
			return nil
		}
		return val.Time
	case pgtype.Bool:
		if !val.Valid {
			return nil
		}
		return val.Bool
	case [16]byte:
		return uuid.UUID(val).String()
	}
	return v
}
