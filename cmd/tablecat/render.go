package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/JonMunkholm/datatable/internal/datatable"
	"github.com/JonMunkholm/datatable/internal/source"
)

func run(w io.Writer, path string, opts options) error {
	if opts.perPage < 1 {
		return fmt.Errorf("--per-page must be at least 1, got %d", opts.perPage)
	}

	csvTable, err := source.ReadCSVFile(path)
	if err != nil {
		return err
	}

	view := buildView(csvTable, opts)
	fmt.Fprintln(w, renderTable(view, opts.plain))
	fmt.Fprintln(w, summaryLine(view))
	return nil
}

// buildView runs the CSV rows through a Table the way a user would: search,
// then sort, then jump to a page.
func buildView(csvTable *source.CSVTable, opts options) datatable.View[datatable.Record] {
	columns := csvTable.Columns()
	t := datatable.New(datatable.Options[datatable.Record]{
		Columns:       columns,
		DisableFilter: true,
		Pagination:    datatable.Pagination{ItemsPerPage: opts.perPage},
	}, sortFor(csvTable, opts))

	t.SetSearch(opts.search)
	t.GoToPage(csvTable.Rows, opts.page)
	return t.View(csvTable.Rows)
}

// sortFor resolves --sort against column keys first, then headers.
func sortFor(csvTable *source.CSVTable, opts options) datatable.SortState {
	if opts.sortKey == "" {
		return datatable.SortState{}
	}
	dir := datatable.Ascending
	if opts.desc {
		dir = datatable.Descending
	}

	key := opts.sortKey
	for i, h := range csvTable.Headers {
		if strings.EqualFold(h, opts.sortKey) {
			key = csvTable.Keys[i]
			break
		}
	}
	return datatable.SortState{Key: key, Direction: dir}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// renderTable draws the view's headers and rows. The empty state is one
// row holding the empty message.
func renderTable(view datatable.View[datatable.Record], plain bool) string {
	headers := make([]string, len(view.Headers))
	for i, h := range view.Headers {
		headers[i] = h.Header
		if h.Indicator != "" {
			headers[i] += " " + h.Indicator
		}
	}

	t := table.New().
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if plain {
		t = t.Border(lipgloss.HiddenBorder())
	}

	if view.Empty {
		t = t.Row(view.EmptyMessage)
		return t.String()
	}
	for _, row := range view.Rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = c.String()
		}
		t = t.Row(cells...)
	}
	return t.String()
}

// summaryLine renders "Page 2 of 7  1 [2] 3 4 5  (64 rows)".
func summaryLine(view datatable.View[datatable.Record]) string {
	c := view.Controls
	var b strings.Builder
	fmt.Fprintf(&b, "Page %d of %d", c.CurrentPage, c.PageCount)
	if c.Visible {
		b.WriteString(" ")
		for _, p := range c.Pages {
			b.WriteString(" ")
			if p == c.CurrentPage {
				b.WriteString("[" + strconv.Itoa(p) + "]")
			} else {
				b.WriteString(strconv.Itoa(p))
			}
		}
	}
	fmt.Fprintf(&b, "  (%d rows", view.MatchedItems)
	if view.SearchTerm != "" {
		fmt.Fprintf(&b, " matching %q", view.SearchTerm)
	}
	b.WriteString(")")
	return b.String()
}
