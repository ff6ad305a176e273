package core

// scheduler.go registers CSV files as tables and keeps them fresh.
//
// Each *.csv file in the import directory becomes a read-only table in the
// "Imports" group, keyed by its file name. The refresher re-reads the files
// on an interval and swaps the rows in place; files that fail to parse keep
// their previous rows and the error is logged. The refresher is
// context-aware for graceful shutdown.

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/JonMunkholm/datatable/internal/source"
)

// ImportGroup is the registry group for CSV-backed tables.
const ImportGroup = "Imports"

// csvImport is a registered CSV table and the memory source behind it.
type csvImport struct {
	key  string
	path string
	src  *source.Memory
}

// RegisterCSVDir registers every *.csv file in dir and returns the keys of
// the tables it added. Files that fail to parse are skipped with a warning.
// Columns are fixed at registration; later refreshes only replace rows.
func (s *Service) RegisterCSVDir(dir string) ([]string, error) {
	imports, err := loadCSVDir(dir)
	if err != nil {
		return nil, err
	}

	s.importsMu.Lock()
	defer s.importsMu.Unlock()
	if s.imports == nil {
		s.imports = make(map[string]csvImport)
	}

	keys := make([]string, len(imports))
	for i, imp := range imports {
		s.imports[imp.key] = imp
		keys[i] = imp.key
	}
	return keys, nil
}

func loadCSVDir(dir string) ([]csvImport, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("list csv files: %w", err)
	}
	sort.Strings(paths)

	var imports []csvImport
	for _, path := range paths {
		table, err := source.ReadCSVFile(path)
		if err != nil {
			slog.Warn("skipping csv import", "path", path, "error", err)
			continue
		}

		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		key := "csv_" + source.ColumnKey(name)
		if _, exists := Get(key); exists {
			slog.Warn("skipping csv import, key in use", "path", path, "key", key)
			continue
		}

		src := source.NewMemory(table.Rows)
		Register(TableDefinition{
			Info: TableInfo{
				Key:   key,
				Group: ImportGroup,
				Label: name,
			},
			Columns:       table.Columns(),
			Source:        src,
			DisableFilter: true,
		})
		imports = append(imports, csvImport{key: key, path: path, src: src})
	}
	return imports, nil
}

// StartCSVRefresher re-reads the CSV files backing registered import tables
// every interval. It returns when ctx is cancelled.
func (s *Service) StartCSVRefresher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	slog.Info("csv refresher started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("csv refresher stopped")
			return
		case <-ticker.C:
			s.refreshCSVTables(ctx)
		}
	}
}

// refreshCSVTables performs one reload pass over the import tables.
func (s *Service) refreshCSVTables(ctx context.Context) {
	start := time.Now()
	refreshed := 0

	s.importsMu.Lock()
	imports := make([]csvImport, 0, len(s.imports))
	for _, imp := range s.imports {
		imports = append(imports, imp)
	}
	s.importsMu.Unlock()

	for _, imp := range imports {
		if ctx.Err() != nil {
			return
		}

		table, err := source.ReadCSVFile(imp.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				imp.src.Replace(nil)
			}
			slog.Error("csv refresh failed", "table", imp.key, "error", err)
			continue
		}
		imp.src.Replace(table.Rows)
		refreshed++
	}

	slog.Debug("csv refresh completed",
		"tables", refreshed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
