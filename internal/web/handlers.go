package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/datatable/internal/core"
	"github.com/JonMunkholm/datatable/internal/datatable"
	"github.com/JonMunkholm/datatable/internal/logging"
	"github.com/JonMunkholm/datatable/internal/web/templates"
)

// maxRowBodySize bounds the JSON body of a row upsert (1MB).
const maxRowBodySize = 1 << 20

// sidebar builds the navigation for a page.
func (s *Server) sidebar(active string) templates.SidebarParams {
	return templates.SidebarParams{
		ActiveTable: active,
		Groups:      s.service.ListTablesByGroup(),
		GroupOrder:  core.Groups(),
	}
}

// handleDashboard renders the main dashboard page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats := s.service.GetAllTableStats(ctx)

	var groups []templates.TableGroup
	for _, groupName := range core.Groups() {
		tables := core.ByGroup(groupName)
		cards := make([]templates.TableCardData, len(tables))
		for i, def := range tables {
			cards[i] = templates.TableCardData{Info: def.Info}
			// Tables that fail to count still get a card
			if st, ok := stats[def.Info.Key]; ok {
				cards[i].RowCount = st.RowCount
				cards[i].HasCount = true
			}
		}
		groups = append(groups, templates.TableGroup{Name: groupName, Tables: cards})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Dashboard(s.sidebar(""), groups).Render(ctx, w); err != nil {
		logging.FromContext(ctx).Error("render dashboard", "error", err)
	}
}

// handleTableView renders the table page, or just the table region for
// HTMX requests.
func (s *Server) handleTableView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tableKey := chi.URLParam(r, "tableKey")

	q := parseTableQuery(r)
	res, err := s.service.GetTableView(ctx, tableKey, q)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	link := templates.TableLink{
		Key:    tableKey,
		Page:   res.View.Controls.CurrentPage,
		Sort:   res.View.Sort,
		Search: res.View.SearchTerm,
	}
	if q.PageSize > 0 {
		link.PerPage = res.PageSize
	}
	data := templates.TableData{
		Info:    res.Info,
		View:    res.View,
		Columns: res.Columns,
		Link:    link,
		Mode:    res.Mode.String(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	component := templates.TableView(s.sidebar(tableKey), data)
	if isHTMX(r) {
		component = templates.TablePartial(data)
	}
	if err := component.Render(ctx, w); err != nil {
		logging.FromContext(ctx).Error("render table", "table", tableKey, "error", err)
	}
}

// handleListTables returns all tables organized by group.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.ListTablesByGroup())
}

// TableViewResponse is the JSON form of a table view.
type TableViewResponse struct {
	Table        core.TableInfo         `json:"table"`
	Mode         string                 `json:"mode"`
	Headers      []datatable.HeaderCell `json:"headers"`
	Rows         []map[string]string    `json:"rows"`
	Empty        bool                   `json:"empty"`
	EmptyMessage string                 `json:"emptyMessage,omitempty"`
	Pagination   datatable.PageControls `json:"pagination"`
	Sort         *datatable.SortState   `json:"sort,omitempty"`
	Search       string                 `json:"search,omitempty"`
	Matched      int                    `json:"matched"`
}

// newTableViewResponse flattens rendered cells to display strings.
func newTableViewResponse(res *core.TableViewResult) TableViewResponse {
	v := res.View
	rows := make([]map[string]string, len(v.Rows))
	for i, row := range v.Rows {
		cells := make(map[string]string, len(row.Cells))
		for _, c := range row.Cells {
			cells[c.Key] = c.String()
		}
		rows[i] = cells
	}

	resp := TableViewResponse{
		Table:      res.Info,
		Mode:       res.Mode.String(),
		Headers:    v.Headers,
		Rows:       rows,
		Empty:      v.Empty,
		Pagination: v.Controls,
		Search:     v.SearchTerm,
		Matched:    v.MatchedItems,
	}
	if v.Empty {
		resp.EmptyMessage = v.EmptyMessage
	}
	if !v.Sort.IsZero() {
		sort := v.Sort
		resp.Sort = &sort
	}
	return resp
}

// handleTableJSON returns a table view as JSON.
func (s *Server) handleTableJSON(w http.ResponseWriter, r *http.Request) {
	tableKey := chi.URLParam(r, "tableKey")

	res, err := s.service.GetTableView(r.Context(), tableKey, parseTableQuery(r))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, newTableViewResponse(res))
}

// handleUpsertRow merges a JSON row into a table by its id field.
func (s *Server) handleUpsertRow(w http.ResponseWriter, r *http.Request) {
	tableKey := chi.URLParam(r, "tableKey")

	r.Body = http.MaxBytesReader(w, r.Body, maxRowBodySize)
	var row core.Row
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil || row == nil {
		if err == nil {
			err = errInvalidRow
		}
		respondError(w, r, errors.Join(errInvalidRow, err), http.StatusBadRequest)
		return
	}

	if err := s.service.UpsertRow(r.Context(), tableKey, row); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleHealth reports liveness and the number of registered tables.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"tables": core.TableCount(),
	})
}
