package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JonMunkholm/datatable/internal/config"
	"github.com/JonMunkholm/datatable/internal/datatable"
	"github.com/JonMunkholm/datatable/internal/source"
)

// ============================================================================
// Test doubles
// ============================================================================

// pagedSource is a server-mode source that records the query it was given
// and returns a canned page.
type pagedSource struct {
	rows  []Row
	total int64
	page  int
	err   error
	got   source.Query
}

func (p *pagedSource) Fetch(_ context.Context, q source.Query) (source.Result, error) {
	p.got = q
	if p.err != nil {
		return source.Result{}, p.err
	}
	page := p.page
	if page == 0 {
		page = q.Page
	}
	return source.Result{Rows: p.rows, Total: p.total, Page: page}, nil
}

func (p *pagedSource) Count(context.Context) (int64, error) {
	if p.err != nil {
		return 0, p.err
	}
	return p.total, nil
}

func (p *pagedSource) Mode() source.Mode { return source.ModeServer }

func peopleRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{"id": fmt.Sprintf("p%02d", i+1), "name": fmt.Sprintf("person %02d", i+1), "age": 20 + i}
	}
	return rows
}

func peopleColumns() []datatable.Column[Row] {
	return []datatable.Column[Row]{
		datatable.MapColumn("name", "Name", true),
		datatable.MapColumn("age", "Age", true),
		datatable.MapColumn("id", "ID", false),
	}
}

func newTestService() *Service {
	return NewService(config.TableConfig{PageSize: 5, MaxPageSize: 10})
}

func cellValues(view datatable.View[Row], key string) []any {
	var out []any
	for _, row := range view.Rows {
		out = append(out, row.Record[key])
	}
	return out
}

// ============================================================================
// NewService / page size
// ============================================================================

func TestNewService_Defaults(t *testing.T) {
	svc := NewService(config.TableConfig{})
	if svc.PageSize() != datatable.DefaultItemsPerPage {
		t.Errorf("expected default page size %d, got %d", datatable.DefaultItemsPerPage, svc.PageSize())
	}
	if svc.maxPageSize != svc.pageSize {
		t.Errorf("expected max page size to be raised to %d, got %d", svc.pageSize, svc.maxPageSize)
	}
}

func TestClampPageSize(t *testing.T) {
	svc := newTestService()
	tests := []struct {
		in, want int
	}{
		{0, 5},
		{-3, 5},
		{7, 7},
		{10, 10},
		{500, 10},
	}
	for _, tt := range tests {
		if got := svc.clampPageSize(tt.in); got != tt.want {
			t.Errorf("clampPageSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// ============================================================================
// GetTableView
// ============================================================================

func TestGetTableView_ClientMode(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(TableDefinition{
		Info:        TableInfo{Key: "people", Group: "Test", Label: "People"},
		Columns:     peopleColumns(),
		Source:      source.NewMemory(peopleRows(12)),
		DefaultSort: datatable.SortState{Key: "age", Direction: datatable.Descending},
	})

	svc := newTestService()
	ctx := context.Background()

	res, err := svc.GetTableView(ctx, "people", TableQuery{Page: 2})
	if err != nil {
		t.Fatalf("GetTableView: %v", err)
	}
	if res.Mode != source.ModeClient {
		t.Errorf("expected client mode, got %s", res.Mode)
	}
	// Default sort: age desc, 31..20; page 2 of 5 per page is 26..22.
	if diff := cmp.Diff([]any{26, 25, 24, 23, 22}, cellValues(res.View, "age")); diff != "" {
		t.Errorf("page 2 mismatch (-want +got):\n%s", diff)
	}
	if res.View.Controls.PageCount != 3 {
		t.Errorf("expected 3 pages, got %d", res.View.Controls.PageCount)
	}
	if res.View.Sort.Key != "age" || res.View.Sort.Direction != datatable.Descending {
		t.Errorf("expected default sort, got %+v", res.View.Sort)
	}

	res, err = svc.GetTableView(ctx, "people", TableQuery{Page: 1, Search: "PERSON 1"})
	if err != nil {
		t.Fatalf("GetTableView: %v", err)
	}
	if res.View.MatchedItems != 3 {
		t.Errorf("expected 3 matches for 'PERSON 1', got %d", res.View.MatchedItems)
	}
	if res.View.SearchTerm != "PERSON 1" {
		t.Errorf("expected search term to round-trip, got %q", res.View.SearchTerm)
	}
}

func TestGetTableView_InvalidSortFallsBack(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(TableDefinition{
		Info:        TableInfo{Key: "people", Group: "Test"},
		Columns:     peopleColumns(),
		Source:      source.NewMemory(peopleRows(3)),
		DefaultSort: datatable.SortState{Key: "name", Direction: datatable.Ascending},
	})

	svc := newTestService()
	for _, sort := range []datatable.SortState{
		{Key: "id", Direction: datatable.Ascending},      // not sortable
		{Key: "missing", Direction: datatable.Ascending}, // unknown
	} {
		res, err := svc.GetTableView(context.Background(), "people", TableQuery{Sort: sort})
		if err != nil {
			t.Fatalf("GetTableView: %v", err)
		}
		if res.View.Sort.Key != "name" {
			t.Errorf("sort %q: expected fallback to name, got %+v", sort.Key, res.View.Sort)
		}
	}
}

func TestGetTableView_ServerMode(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	src := &pagedSource{rows: peopleRows(5), total: 42}
	Register(TableDefinition{
		Info:    TableInfo{Key: "remote", Group: "Test"},
		Columns: peopleColumns(),
		Source:  src,
	})

	svc := newTestService()
	res, err := svc.GetTableView(context.Background(), "remote", TableQuery{
		Page:     3,
		PageSize: 50,
		Sort:     datatable.SortState{Key: "name", Direction: datatable.Ascending},
		Search:   "zzz",
	})
	if err != nil {
		t.Fatalf("GetTableView: %v", err)
	}

	wantQuery := source.Query{
		Page:     3,
		PageSize: 10,
		Sort:     datatable.SortState{Key: "name", Direction: datatable.Ascending},
		Search:   "zzz",
	}
	if diff := cmp.Diff(wantQuery, src.got); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}

	// The page is not re-filtered or re-sliced by the engine.
	if len(res.View.Rows) != 5 {
		t.Errorf("expected the 5 supplied rows, got %d", len(res.View.Rows))
	}
	if res.View.Controls.PageCount != 5 {
		t.Errorf("expected ceil(42/10)=5 pages, got %d", res.View.Controls.PageCount)
	}
	if res.View.Controls.CurrentPage != 3 {
		t.Errorf("expected page 3, got %d", res.View.Controls.CurrentPage)
	}
	if res.View.SearchTerm != "zzz" {
		t.Errorf("expected search term preserved, got %q", res.View.SearchTerm)
	}
}

func TestGetTableView_ServerModeClampedPage(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	src := &pagedSource{rows: peopleRows(2), total: 12, page: 3}
	Register(TableDefinition{
		Info:    TableInfo{Key: "remote", Group: "Test"},
		Columns: peopleColumns(),
		Source:  src,
	})

	res, err := newTestService().GetTableView(context.Background(), "remote", TableQuery{Page: 99})
	if err != nil {
		t.Fatalf("GetTableView: %v", err)
	}
	if res.View.Controls.CurrentPage != 3 {
		t.Errorf("expected clamped page 3, got %d", res.View.Controls.CurrentPage)
	}
}

func TestGetTableView_Errors(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	boom := errors.New("connection refused")
	Register(TableDefinition{
		Info:    TableInfo{Key: "broken", Group: "Test"},
		Columns: peopleColumns(),
		Source:  &pagedSource{err: boom},
	})

	svc := newTestService()

	_, err := svc.GetTableView(context.Background(), "missing", TableQuery{})
	if !errors.Is(err, ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}

	_, err = svc.GetTableView(context.Background(), "broken", TableQuery{})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped source error, got %v", err)
	}
}

func TestGetTableView_EmptyTable(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(TableDefinition{
		Info:         TableInfo{Key: "empty", Group: "Test"},
		Columns:      peopleColumns(),
		Source:       source.NewMemory(nil),
		EmptyMessage: "Nobody here",
	})

	res, err := newTestService().GetTableView(context.Background(), "empty", TableQuery{})
	if err != nil {
		t.Fatalf("GetTableView: %v", err)
	}
	if !res.View.Empty || res.View.EmptyMessage != "Nobody here" {
		t.Errorf("expected empty view with custom message, got empty=%v msg=%q", res.View.Empty, res.View.EmptyMessage)
	}
	if res.View.Controls.PageCount != 1 || res.View.Controls.Visible {
		t.Errorf("expected a single hidden page, got %+v", res.View.Controls)
	}
}

// ============================================================================
// Listing and stats
// ============================================================================

func TestListTablesAndStats(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(TableDefinition{
		Info:    TableInfo{Key: "people", Group: "A", Label: "People"},
		Columns: peopleColumns(),
		Source:  source.NewMemory(peopleRows(4)),
	})
	Register(TableDefinition{
		Info:    TableInfo{Key: "broken", Group: "B", Label: "Broken"},
		Columns: peopleColumns(),
		Source:  &pagedSource{err: errors.New("down")},
	})

	svc := newTestService()

	if got := len(svc.ListTables()); got != 2 {
		t.Errorf("expected 2 tables, got %d", got)
	}
	byGroup := svc.ListTablesByGroup()
	if len(byGroup["A"]) != 1 || byGroup["A"][0].Label != "People" {
		t.Errorf("unexpected groups: %+v", byGroup)
	}

	stats := svc.GetAllTableStats(context.Background())
	if stats["people"] == nil || stats["people"].RowCount != 4 {
		t.Errorf("expected 4 rows for people, got %+v", stats["people"])
	}
	if _, ok := stats["broken"]; ok {
		t.Error("expected failing source to be skipped")
	}
}

// ============================================================================
// UpsertRow
// ============================================================================

func TestUpsertRow(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(TableDefinition{
		Info:    TableInfo{Key: "people", Group: "Test", IDKey: "id"},
		Columns: peopleColumns(),
		Source:  source.NewMemory(peopleRows(2)),
	})
	Register(TableDefinition{
		Info:    TableInfo{Key: "remote", Group: "Test", IDKey: "id"},
		Columns: peopleColumns(),
		Source:  &pagedSource{},
	})

	svc := newTestService()
	ctx := context.Background()

	if err := svc.UpsertRow(ctx, "people", Row{"id": "p01", "name": "renamed", "age": 99}); err != nil {
		t.Fatalf("UpsertRow existing: %v", err)
	}
	if err := svc.UpsertRow(ctx, "people", Row{"id": "p03", "name": "new", "age": 1}); err != nil {
		t.Fatalf("UpsertRow new: %v", err)
	}

	res, err := svc.GetTableView(ctx, "people", TableQuery{Sort: datatable.SortState{Key: "age", Direction: datatable.Ascending}})
	if err != nil {
		t.Fatalf("GetTableView: %v", err)
	}
	if diff := cmp.Diff([]any{"new", "person 02", "renamed"}, cellValues(res.View, "name")); diff != "" {
		t.Errorf("rows after upsert mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		name  string
		table string
		row   Row
		want  error
	}{
		{"unknown table", "missing", Row{"id": "x"}, ErrTableNotFound},
		{"server source is read-only", "remote", Row{"id": "x"}, ErrReadOnly},
		{"missing id", "people", Row{"name": "anon"}, ErrMissingID},
		{"empty id", "people", Row{"id": ""}, ErrMissingID},
		{"object id", "people", Row{"id": map[string]any{"a": 1.0}}, ErrInvalidID},
		{"list id", "people", Row{"id": []any{"p01"}}, ErrInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.UpsertRow(ctx, tt.table, tt.row); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestUpsertRow_NumericIDsMerge(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(TableDefinition{
		Info:    TableInfo{Key: "tickets", Group: "Test", IDKey: "id"},
		Columns: peopleColumns(),
		Source:  source.NewMemory([]Row{{"id": 1, "name": "open"}, {"id": 2, "name": "open"}}),
	})
	svc := newTestService()
	ctx := context.Background()

	// Object ids are rejected every time, so a stored one is never compared.
	for range 2 {
		if err := svc.UpsertRow(ctx, "tickets", Row{"id": map[string]any{"a": 1.0}}); !errors.Is(err, ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	}

	// JSON numbers arrive as float64 and still replace the int-keyed row.
	if err := svc.UpsertRow(ctx, "tickets", Row{"id": 2.0, "name": "closed"}); err != nil {
		t.Fatalf("UpsertRow: %v", err)
	}

	res, err := svc.GetTableView(ctx, "tickets", TableQuery{})
	if err != nil {
		t.Fatalf("GetTableView: %v", err)
	}
	if diff := cmp.Diff([]any{"open", "closed"}, cellValues(res.View, "name")); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}
