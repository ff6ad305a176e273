// Package source provides the data sources that feed table views.
//
// A [Memory] source hands the whole record set to the engine, which then
// searches, sorts and pages it locally (client mode). A [Postgres] source
// pushes search, sort and paging into SQL and returns a single page plus the
// filtered total (server mode).
package source

import (
	"context"

	"github.com/JonMunkholm/datatable/internal/datatable"
)

// Mode says who is responsible for slicing pages.
type Mode int

const (
	ModeClient Mode = iota // Source returns every row; the engine pages
	ModeServer             // Source returns one page; the engine trusts Total
)

func (m Mode) String() string {
	if m == ModeServer {
		return "server"
	}
	return "client"
}

// Query describes the page a caller wants. Client-mode sources ignore it.
type Query struct {
	Page     int
	PageSize int
	Sort     datatable.SortState
	Search   string
}

// Result is what a source returns for a query.
type Result struct {
	Rows  []datatable.Record
	Total int64 // Rows matching the search, across all pages
	Page  int   // Effective page (server mode may clamp the requested page)
}

// Source supplies records for a table.
type Source interface {
	Fetch(ctx context.Context, q Query) (Result, error)
	Count(ctx context.Context) (int64, error)
	Mode() Mode
}
