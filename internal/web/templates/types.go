package templates

import (
	"github.com/JonMunkholm/datatable/internal/core"
	"github.com/JonMunkholm/datatable/internal/datatable"
)

// SidebarParams selects the highlighted sidebar entry.
type SidebarParams struct {
	ActiveTable string
	Groups      map[string][]core.TableInfo
	GroupOrder  []string
}

// TableCardData is one table tile on the dashboard.
type TableCardData struct {
	Info     core.TableInfo
	RowCount int64
	HasCount bool // False when the source could not be counted
}

// TableGroup is a titled set of table tiles.
type TableGroup struct {
	Name   string
	Tables []TableCardData
}

// TableData is everything the table templates need for one render.
type TableData struct {
	Info    core.TableInfo
	View    datatable.View[core.Row]
	Columns []datatable.Column[core.Row]
	Link    TableLink // State of the current request
	Mode    string
}
