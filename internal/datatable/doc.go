// Package datatable turns an in-memory collection of records into a
// searchable, sortable, paginated view.
//
// The package has no UI or transport dependencies. A caller describes its
// records with [Column] values and asks for a [View]; the web console renders
// views as HTML and JSON, and the tablecat CLI renders them in a terminal.
//
// # Pipeline
//
// Every view is derived in the same order:
//
//  1. [ApplySearch] keeps records where any field contains the search term
//  2. [ApplySort] orders them by the single active sort column
//  3. [Paginate] slices out the current page (client mode) or passes the
//     records through untouched (server mode)
//  4. [RenderRow] turns each record into display cells
//
// None of these steps mutate the input slice.
//
// # Pagination Modes
//
// In client mode the caller hands over the full record set and the engine
// slices pages out of it. In server mode the caller has already fetched one
// page from elsewhere and supplies the overall total via
// [Pagination.TotalItems]; the engine only uses the total for page-count math.
//
// # Sort Cycle
//
// Clicking a header cycles ascending, descending, ascending. There is no
// third click that clears the sort; see [ToggleSort].
package datatable
