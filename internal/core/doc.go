// Package core binds named tables to their columns and data sources and
// derives table views for any frontend.
//
// This package has no UI dependencies. The web console and the CLI both use
// it, and tests drive it without a network or database.
//
// # Table Registry
//
// Tables are registered at init time using [Register]. Each [TableDefinition]
// names its columns and the [source.Source] that supplies rows:
//
//	core.Register(core.TableDefinition{
//	    Info: core.TableInfo{Key: "vendors", Group: "Marketplace", Label: "Vendors"},
//	    Columns: []datatable.Column[core.Row]{
//	        datatable.MapColumn("name", "Name", true),
//	        datatable.MapColumn("rating", "Rating", true),
//	    },
//	    Source:      source.NewMemory(rows),
//	    DefaultSort: datatable.SortState{Key: "name", Direction: datatable.Ascending},
//	})
//
// # Views
//
// [Service.GetTableView] fetches rows and runs them through the datatable
// engine. The source's [source.Mode] decides who pages: memory sources hand
// over every row (client mode), SQL sources return one page and the filtered
// total (server mode).
//
// # CSV Imports
//
// [RegisterCSVDir] registers every CSV file in a directory as a read-only
// table in the "Imports" group. [Service.StartCSVRefresher] re-reads the
// files periodically so edits show up without a restart.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - TBL001-TBL002: Table errors (unknown key, read-only)
//   - REQ001-REQ005: Request errors (missing id, bad payload, cancelled, timeout, bad id)
//   - DB004-DB008: Database errors (connection, timeout, permissions)
//   - RATE001, AUTH001: Rate limiting and API keys
package core
