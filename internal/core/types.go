package core

import (
	"github.com/JonMunkholm/datatable/internal/datatable"
	"github.com/JonMunkholm/datatable/internal/source"
)

// Row is a single record as key-value pairs.
type Row = datatable.Record

// TableInfo contains display information about a table.
type TableInfo struct {
	Key     string   `json:"key"`     // Unique identifier: "orders"
	Group   string   `json:"group"`   // Sidebar group: "Operations", "Finance"
	Label   string   `json:"label"`   // Display name: "Orders"
	Columns []string `json:"columns"` // Column headers, in display order
	IDKey   string   `json:"idKey,omitempty"`
}

// TableDefinition contains everything needed to serve a table.
type TableDefinition struct {
	Info    TableInfo
	Columns []datatable.Column[Row]
	Source  source.Source

	// DefaultSort applies when the request carries no valid sort.
	DefaultSort datatable.SortState

	// SearchAllFields searches every field of a row, not only the columns.
	SearchAllFields bool

	DisableSearch bool
	DisableFilter bool
	EmptyMessage  string
}

// TableQuery is a request for one view of a table.
type TableQuery struct {
	Page     int
	PageSize int
	Sort     datatable.SortState
	Search   string
}

// TableViewResult is a derived view plus the metadata a frontend needs to
// render links back into the table.
type TableViewResult struct {
	Info     TableInfo
	View     datatable.View[Row]
	Mode     source.Mode
	PageSize int
	Columns  []datatable.Column[Row]
}

// TableStats summarises a table for the dashboard.
type TableStats struct {
	Key      string `json:"key"`
	RowCount int64  `json:"rowCount"`
}
