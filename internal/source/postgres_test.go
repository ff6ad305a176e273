package source

import (
	"testing"
	"time"

	"github.com/JonMunkholm/datatable/internal/datatable"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgtype"
)

func testPostgres(t *testing.T) *Postgres {
	t.Helper()
	p, err := NewPostgres(nil, "orders", []ColumnSpec{
		{Key: "id", Text: true},
		{Key: "customer", DBColumn: "customer_name", Text: true},
		{Key: "amount"},
	})
	if err != nil {
		t.Fatalf("NewPostgres() error = %v", err)
	}
	return p
}

func TestNewPostgres_Validation(t *testing.T) {
	if _, err := NewPostgres(nil, "", []ColumnSpec{{Key: "id"}}); err == nil {
		t.Error("expected error for missing table")
	}
	if _, err := NewPostgres(nil, "orders", nil); err == nil {
		t.Error("expected error for missing columns")
	}
}

func TestPostgres_CountQuery(t *testing.T) {
	p := testPostgres(t)

	sql, args := p.countQuery("")
	if sql != `SELECT COUNT(*) FROM "orders"` || args != nil {
		t.Errorf("unfiltered count = %q %v", sql, args)
	}

	sql, args = p.countQuery("bob")
	want := `SELECT COUNT(*) FROM "orders" WHERE ("id" ILIKE $1 OR "customer_name" ILIKE $1 OR "amount"::text ILIKE $1)`
	if sql != want {
		t.Errorf("count query\n got: %s\nwant: %s", sql, want)
	}
	if diff := cmp.Diff([]any{"%bob%"}, args); diff != "" {
		t.Errorf("args (-want +got):\n%s", diff)
	}
}

func TestPostgres_SelectQuery(t *testing.T) {
	p := testPostgres(t)

	tests := []struct {
		name     string
		search   string
		sort     datatable.SortState
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "default sort by first column",
			wantSQL:  `SELECT "id", "customer_name", "amount" FROM "orders" ORDER BY "id" asc LIMIT $1 OFFSET $2`,
			wantArgs: []any{10, 20},
		},
		{
			name:     "descending sort on mapped column",
			sort:     datatable.SortState{Key: "customer", Direction: datatable.Descending},
			wantSQL:  `SELECT "id", "customer_name", "amount" FROM "orders" ORDER BY "customer_name" desc, "id" asc LIMIT $1 OFFSET $2`,
			wantArgs: []any{10, 20},
		},
		{
			name:     "unknown sort key falls back",
			sort:     datatable.SortState{Key: "nope", Direction: datatable.Descending},
			wantSQL:  `SELECT "id", "customer_name", "amount" FROM "orders" ORDER BY "id" asc LIMIT $1 OFFSET $2`,
			wantArgs: []any{10, 20},
		},
		{
			name:     "search shifts placeholders",
			search:   "x",
			sort:     datatable.SortState{Key: "amount", Direction: datatable.Ascending},
			wantSQL:  `SELECT "id", "customer_name", "amount" FROM "orders" WHERE ("id" ILIKE $1 OR "customer_name" ILIKE $1 OR "amount"::text ILIKE $1) ORDER BY "amount" asc, "id" asc LIMIT $2 OFFSET $3`,
			wantArgs: []any{"%x%", 10, 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := p.selectQuery(tt.search, tt.sort, 10, 20)
			if sql != tt.wantSQL {
				t.Errorf("sql\n got: %s\nwant: %s", sql, tt.wantSQL)
			}
			if diff := cmp.Diff(tt.wantArgs, args); diff != "" {
				t.Errorf("args (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeValue(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	id := [16]byte{0x12, 0x34}

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"valid text", pgtype.Text{String: "a", Valid: true}, "a"},
		{"null text", pgtype.Text{}, nil},
		{"date", pgtype.Date{Time: day, Valid: true}, day},
		{"bool", pgtype.Bool{Bool: true, Valid: true}, true},
		{"null numeric", pgtype.Numeric{}, nil},
		{"uuid bytes", id, "12340000-0000-0000-0000-000000000000"},
		{"passthrough", int64(4), int64(4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, normalizeValue(tt.in)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestPostgres_OrderByTiebreak(t *testing.T) {
	composite, err := NewPostgres(nil, "line_items", []ColumnSpec{
		{Key: "sku", Text: true},
		{Key: "order_id", Primary: true},
		{Key: "line_no", Primary: true},
		{Key: "qty"},
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		p    *Postgres
		sort datatable.SortState
		want string
	}{
		{
			name: "first column breaks ties without a primary key",
			p:    testPostgres(t),
			sort: datatable.SortState{Key: "amount", Direction: datatable.Descending},
			want: `"amount" desc, "id" asc`,
		},
		{
			name: "sorting on the tiebreak column adds nothing",
			p:    testPostgres(t),
			sort: datatable.SortState{Key: "id", Direction: datatable.Descending},
			want: `"id" desc`,
		},
		{
			name: "composite primary key",
			p:    composite,
			sort: datatable.SortState{Key: "qty", Direction: datatable.Ascending},
			want: `"qty" asc, "order_id" asc, "line_no" asc`,
		},
		{
			name: "sort column inside the primary key",
			p:    composite,
			sort: datatable.SortState{Key: "line_no", Direction: datatable.Descending},
			want: `"line_no" desc, "order_id" asc`,
		},
		{
			name: "default sort with a primary key",
			p:    composite,
			want: `"sku" asc, "order_id" asc, "line_no" asc`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.orderBy(tt.sort); got != tt.want {
				t.Errorf("orderBy = %s, want %s", got, tt.want)
			}
		})
	}
}
