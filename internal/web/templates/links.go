// Package templates renders the console's HTML. Components are written in
// .templ files and compiled with `templ generate`; links.go and types.go
// hold the plain Go they call into.
package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/datatable/internal/core"
	"github.com/JonMunkholm/datatable/internal/datatable"
)

// TableLink holds the query state carried by every link into a table.
type TableLink struct {
	Key     string
	Page    int
	PerPage int // 0 omits per_page so the server default applies
	Sort    datatable.SortState
	Search  string
}

// Href renders the link as /table/{key}?page=..&sort=..&dir=..&search=...
func (l TableLink) Href() string {
	q := url.Values{}
	if l.Page > 1 {
		q.Set("page", strconv.Itoa(l.Page))
	}
	if l.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(l.PerPage))
	}
	if !l.Sort.IsZero() {
		q.Set("sort", l.Sort.Key)
		q.Set("dir", string(l.Sort.Direction))
	}
	if l.Search != "" {
		q.Set("search", l.Search)
	}

	href := "/table/" + url.PathEscape(l.Key)
	if len(q) > 0 {
		href += "?" + q.Encode()
	}
	return href
}

// WithPage returns a copy of l pointing at page.
func (l TableLink) WithPage(page int) TableLink {
	l.Page = page
	return l
}

// WithSort returns a copy of l with a new sort.
func (l TableLink) WithSort(s datatable.SortState) TableLink {
	l.Sort = s
	return l
}

// baseHref is the table's own path, used as the search form target.
func (d TableData) baseHref() string {
	return TableLink{Key: d.Info.Key}.Href()
}

// sortHref links a header to the sort it toggles to.
func (d TableData) sortHref(key string) string {
	next := datatable.ToggleSort(d.View.Sort, key, d.Columns)
	return d.Link.WithSort(next).Href()
}

func ariaSort(hc datatable.HeaderCell) string {
	if hc.Direction == string(datatable.Descending) {
		return "descending"
	}
	return "ascending"
}

// summaryText reads "Showing 11-20 of 42".
func summaryText(v datatable.View[core.Row]) string {
	c := v.Controls
	if v.Empty {
		return fmt.Sprintf("Showing 0 of %d", c.TotalItems)
	}
	first := (c.CurrentPage-1)*c.ItemsPerPage + 1
	last := first + len(v.Rows) - 1
	return fmt.Sprintf("Showing %d-%d of %d", first, last, c.TotalItems)
}

// valueOf renders a cell or action value. Components render as markup,
// anything else as escaped text.
func valueOf(v any) templ.Component {
	switch v := v.(type) {
	case nil:
		return templ.NopComponent
	case templ.Component:
		return v
	default:
		return cellText(datatable.Cell{Value: v}.String())
	}
}
