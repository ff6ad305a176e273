package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/JonMunkholm/datatable/internal/config"
	"github.com/JonMunkholm/datatable/internal/datatable"
	"github.com/JonMunkholm/datatable/internal/logging"
	"github.com/JonMunkholm/datatable/internal/source"
)

var (
	// ErrTableNotFound is returned for keys with no registered table.
	ErrTableNotFound = errors.New("table not found")

	// ErrReadOnly is returned when writing to a table whose source cannot
	// accept rows.
	ErrReadOnly = errors.New("table is read-only")

	// ErrMissingID is returned when an upserted row lacks the table's id field.
	ErrMissingID = errors.New("missing id field")

	// ErrInvalidID is returned when an upserted row's id is not a string,
	// number or boolean.
	ErrInvalidID = source.ErrInvalidID
)

// upserter is implemented by sources that accept pushed rows.
type upserter interface {
	Upsert(idKey string, row datatable.Record) error
}

// Service provides table listing and view derivation.
type Service struct {
	pageSize    int
	maxPageSize int

	importsMu sync.Mutex
	imports   map[string]csvImport
}

// NewService creates a new Service instance.
func NewService(cfg config.TableConfig) *Service {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = datatable.DefaultItemsPerPage
	}
	maxPageSize := cfg.MaxPageSize
	if maxPageSize < pageSize {
		maxPageSize = pageSize
	}
	return &Service{pageSize: pageSize, maxPageSize: maxPageSize}
}

// PageSize returns the default page size.
func (s *Service) PageSize() int {
	return s.pageSize
}

// ListTables returns information about all registered tables.
func (s *Service) ListTables() []TableInfo {
	defs := All()
	infos := make([]TableInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// ListTablesByGroup returns tables organized by group.
func (s *Service) ListTablesByGroup() map[string][]TableInfo {
	result := make(map[string][]TableInfo)
	for _, group := range Groups() {
		for _, def := range ByGroup(group) {
			result[group] = append(result[group], def.Info)
		}
	}
	return result
}

// GetAllTableStats returns row counts for every table.
// Tables whose source fails to count are skipped and logged.
func (s *Service) GetAllTableStats(ctx context.Context) map[string]*TableStats {
	stats := make(map[string]*TableStats)
	for _, def := range All() {
		n, err := def.Source.Count(ctx)
		if err != nil {
			logging.FromContext(ctx).Warn("count table", "table", def.Info.Key, "error", err)
			continue
		}
		stats[def.Info.Key] = &TableStats{Key: def.Info.Key, RowCount: n}
	}
	return stats
}

// clampPageSize keeps a requested page size within [1, maxPageSize],
// using the default for non-positive values.
func (s *Service) clampPageSize(n int) int {
	if n <= 0 {
		return s.pageSize
	}
	return min(n, s.maxPageSize)
}

// GetTableView fetches rows for a table and derives the requested view.
//
// Client-mode sources hand over every row and the engine searches, sorts
// and pages them. Server-mode sources have already done all three; the
// engine only renders the page and computes page links from the total.
func (s *Service) GetTableView(ctx context.Context, tableKey string, q TableQuery) (*TableViewResult, error) {
	def, ok := Get(tableKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableKey)
	}

	pageSize := s.clampPageSize(q.PageSize)
	sort := q.Sort
	if !datatable.ValidSort(sort, def.Columns) {
		sort = def.DefaultSort
	}
	search := q.Search
	if def.DisableSearch {
		search = ""
	}

	res, err := def.Source.Fetch(ctx, source.Query{
		Page:     max(q.Page, 1),
		PageSize: pageSize,
		Sort:     sort,
		Search:   search,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", tableKey, err)
	}

	opts := datatable.Options[Row]{
		Columns:       def.Columns,
		DisableSearch: def.DisableSearch,
		DisableFilter: def.DisableFilter,
		EmptyMessage:  def.EmptyMessage,
		Pagination: datatable.Pagination{
			ItemsPerPage: pageSize,
			CurrentPage:  res.Page,
		},
	}
	if def.SearchAllFields {
		opts.SearchValues = datatable.MapFields
	}

	engineSearch := search
	mode := def.Source.Mode()
	if mode == source.ModeServer {
		opts.Pagination.TotalItems = int(res.Total)
		engineSearch = ""
	}

	view := datatable.Build(res.Rows, opts, engineSearch, sort)
	view.SearchTerm = search

	logging.FromContext(ctx).Debug("table view",
		"table", tableKey,
		"mode", mode.String(),
		"page", view.Controls.CurrentPage,
		"pages", view.Controls.PageCount,
		"rows", len(view.Rows),
	)

	return &TableViewResult{
		Info:     def.Info,
		View:     view,
		Mode:     mode,
		PageSize: pageSize,
		Columns:  def.Columns,
	}, nil
}

// UpsertRow pushes a row into a table, replacing any row with the same id.
// Used for realtime updates such as order status changes.
func (s *Service) UpsertRow(ctx context.Context, tableKey string, row Row) error {
	def, ok := Get(tableKey)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTableNotFound, tableKey)
	}

	up, ok := def.Source.(upserter)
	if !ok || def.Info.IDKey == "" {
		return fmt.Errorf("%w: %s", ErrReadOnly, tableKey)
	}
	v, ok := row[def.Info.IDKey]
	if !ok || v == nil || v == "" {
		return fmt.Errorf("%w: %s", ErrMissingID, def.Info.IDKey)
	}
	id, ok := source.CanonicalID(v)
	if !ok {
		return fmt.Errorf("%w: %s must be a string, number or boolean", ErrInvalidID, def.Info.IDKey)
	}

	if err := up.Upsert(def.Info.IDKey, row); err != nil {
		return err
	}
	logging.FromContext(ctx).Info("row upserted", "table", tableKey, "id", id)
	return nil
}
