package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JonMunkholm/datatable/internal/config"
	"github.com/JonMunkholm/datatable/internal/core"
	"github.com/JonMunkholm/datatable/internal/datatable"
	"github.com/JonMunkholm/datatable/internal/source"
)

// ============================================================================
// Fixtures
// ============================================================================

func newTestServer(t *testing.T, vars map[string]string) *Server {
	t.Helper()

	core.Clear()
	t.Cleanup(core.Clear)

	rows := make([]core.Row, 23)
	for i := range rows {
		rows[i] = core.Row{
			"id":     string(rune('a' + i)),
			"name":   "vendor " + string(rune('A'+i)),
			"rating": float64(i % 5),
		}
	}
	core.Register(core.TableDefinition{
		Info: core.TableInfo{Key: "vendors", Group: "Marketplace", Label: "Vendors", IDKey: "id"},
		Columns: []datatable.Column[core.Row]{
			datatable.MapColumn("name", "Name", true),
			datatable.MapColumn("rating", "Rating", true),
		},
		Source:      source.NewMemory(rows),
		DefaultSort: datatable.SortState{Key: "name", Direction: datatable.Ascending},
	})
	core.Register(core.TableDefinition{
		Info:    core.TableInfo{Key: "payments", Group: "Finance", Label: "Payments"},
		Columns: []datatable.Column[core.Row]{datatable.MapColumn("ref", "Reference", true)},
		Source:  source.NewMemory(nil),
	})

	cfg, err := config.LoadFrom(func(k string) string { return vars[k] })
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	srv := NewServer(core.NewService(cfg.Table), cfg)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	return srv
}

func do(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func get(srv *Server, path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return do(srv, req)
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) TableViewResponse {
	t.Helper()
	var resp TableViewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v\n%s", err, rec.Body.String())
	}
	return resp
}

// ============================================================================
// Pages
// ============================================================================

func TestDashboard(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := get(srv, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Vendors", "23 rows", "Payments", "0 rows"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestTableView_FullPageAndPartial(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := get(srv, "/table/vendors?page=2&sort=name&dir=desc")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "<!doctype html>") {
		t.Error("expected full page")
	}
	// desc by name, page 2 of 10 per page starts at vendor M.
	if !strings.Contains(body, ">vendor M<") {
		t.Errorf("expected vendor M on page 2:\n%s", body)
	}
	if !strings.Contains(body, `<span class="sort-indicator">↓</span>`) {
		t.Error("expected descending indicator")
	}

	rec = get(srv, "/table/vendors", "HX-Request", "true")
	if strings.Contains(rec.Body.String(), "<!doctype html>") {
		t.Error("expected partial for HTMX request")
	}
	if !strings.HasPrefix(rec.Body.String(), `<section id="table-view"`) {
		t.Errorf("unexpected partial:\n%s", rec.Body.String())
	}
}

func TestTableView_NotFound(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := get(srv, "/table/missing")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "TBL001") {
		t.Errorf("expected error code in body: %s", rec.Body.String())
	}

	rec = get(srv, "/table/missing", "HX-Request", "true")
	if !strings.Contains(rec.Body.String(), `class="alert alert-error"`) {
		t.Errorf("expected HTMX error alert: %s", rec.Body.String())
	}
}

func TestSecurityHeadersAndStatic(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := get(srv, "/static/app.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("static status = %d", rec.Code)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing nosniff header")
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("missing CSP header")
	}

	srv = newTestServer(t, map[string]string{"SECURITY_ENABLE_CSP": "false"})
	if get(srv, "/healthz").Header().Get("Content-Security-Policy") != "" {
		t.Error("expected CSP disabled")
	}
}

// ============================================================================
// API
// ============================================================================

func TestAPI_TableJSON(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := get(srv, "/api/table/vendors?page=3&per_page=5&sort=rating&dir=asc")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeView(t, rec)

	if resp.Mode != "client" {
		t.Errorf("mode = %q", resp.Mode)
	}
	if resp.Pagination.PageCount != 5 || resp.Pagination.CurrentPage != 3 {
		t.Errorf("pagination = %+v", resp.Pagination)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, resp.Pagination.Pages); diff != "" {
		t.Errorf("page window mismatch (-want +got):\n%s", diff)
	}
	if resp.Sort == nil || resp.Sort.Key != "rating" {
		t.Errorf("sort = %+v", resp.Sort)
	}
	// Ratings cycle 0..4; ascending and stable, page 3 is the rating-2 block.
	var ratings []string
	for _, row := range resp.Rows {
		ratings = append(ratings, row["rating"])
	}
	if diff := cmp.Diff([]string{"2", "2", "2", "2", "2"}, ratings); diff != "" {
		t.Errorf("ratings mismatch (-want +got):\n%s", diff)
	}
}

func TestAPI_SearchAndEmpty(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := decodeView(t, get(srv, "/api/table/vendors?search=VENDOR%20c"))
	if resp.Matched != 1 || len(resp.Rows) != 1 || resp.Rows[0]["name"] != "vendor C" {
		t.Errorf("unexpected search result: %+v", resp)
	}

	resp = decodeView(t, get(srv, "/api/table/vendors?search=nothing-matches"))
	if !resp.Empty || resp.EmptyMessage != datatable.DefaultEmptyMessage {
		t.Errorf("expected empty view, got %+v", resp)
	}
	if resp.Pagination.PageCount != 1 || resp.Pagination.Visible {
		t.Errorf("expected one hidden page, got %+v", resp.Pagination)
	}
}

func TestAPI_ListTablesAndHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	var groups map[string][]core.TableInfo
	if err := json.Unmarshal(get(srv, "/api/tables").Body.Bytes(), &groups); err != nil {
		t.Fatal(err)
	}
	if len(groups["Marketplace"]) != 1 || groups["Marketplace"][0].Key != "vendors" {
		t.Errorf("unexpected groups: %+v", groups)
	}

	var health map[string]any
	if err := json.Unmarshal(get(srv, "/healthz").Body.Bytes(), &health); err != nil {
		t.Fatal(err)
	}
	if health["status"] != "ok" || health["tables"] != 2.0 {
		t.Errorf("unexpected health: %v", health)
	}
}

func TestAPI_UpsertRow(t *testing.T) {
	srv := newTestServer(t, nil)

	post := func(table, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/table/"+table+"/rows", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return do(srv, req)
	}

	if rec := post("vendors", `{"id":"a","name":"zz renamed","rating":9}`); rec.Code != http.StatusOK {
		t.Fatalf("upsert status = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeView(t, get(srv, "/api/table/vendors?sort=rating&dir=desc&per_page=1"))
	if resp.Rows[0]["name"] != "zz renamed" || resp.Pagination.TotalItems != 23 {
		t.Errorf("expected replaced row on top without growth, got %+v", resp)
	}

	tests := []struct {
		name  string
		table string
		body  string
		want  int
		code  string
	}{
		{"invalid json", "vendors", `{not json`, http.StatusBadRequest, "REQ002"},
		{"array body", "vendors", `[1,2]`, http.StatusBadRequest, "REQ002"},
		{"null body", "vendors", `null`, http.StatusBadRequest, "REQ002"},
		{"missing id", "vendors", `{"name":"x"}`, http.StatusBadRequest, "REQ001"},
		{"object id", "vendors", `{"id":{"a":1}}`, http.StatusBadRequest, "REQ005"},
		{"object id repeated", "vendors", `{"id":{"a":1}}`, http.StatusBadRequest, "REQ005"},
		{"read-only table", "payments", `{"id":"x"}`, http.StatusConflict, "TBL002"},
		{"unknown table", "missing", `{"id":"x"}`, http.StatusNotFound, "TBL001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(tt.table, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
			var errResp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
				t.Fatal(err)
			}
			if errResp.Code != tt.code {
				t.Errorf("code = %q, want %q", errResp.Code, tt.code)
			}
		})
	}
}

func TestAPI_RequiresKey(t *testing.T) {
	srv := newTestServer(t, map[string]string{"REQUIRE_API_KEY": "true", "API_KEYS": "k1"})

	if rec := get(srv, "/api/tables"); rec.Code != http.StatusUnauthorized {
		t.Errorf("status without key = %d, want 401", rec.Code)
	}
	if rec := get(srv, "/api/tables", "X-API-Key", "k1"); rec.Code != http.StatusOK {
		t.Errorf("status with key = %d, want 200", rec.Code)
	}
	// Pages stay public.
	if rec := get(srv, "/table/vendors"); rec.Code != http.StatusOK {
		t.Errorf("page status = %d, want 200", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, map[string]string{"RATE_LIMIT_REQUESTS_PER_MINUTE": "2"})

	for i := 0; i < 2; i++ {
		if rec := get(srv, "/healthz"); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i+1, rec.Code)
		}
	}
	rec := get(srv, "/api/tables")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}
	if !strings.Contains(rec.Body.String(), "RATE001") {
		t.Errorf("expected RATE001: %s", rec.Body.String())
	}
}
