package datatable

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPageCount(t *testing.T) {
	tests := []struct {
		total, perPage, want int
	}{
		{23, 10, 3},
		{20, 10, 2},
		{1, 10, 1},
		{0, 10, 1},
		{-5, 10, 1},
		{25, 0, 3}, // falls back to the default page size
	}
	for _, tt := range tests {
		if got := PageCount(tt.total, tt.perPage); got != tt.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
		}
	}
}

func TestPaginate_ClientMode(t *testing.T) {
	records := seq(25)

	tests := []struct {
		name string
		p    Pagination
		want []int
	}{
		{name: "second page", p: Pagination{ItemsPerPage: 10, CurrentPage: 2}, want: records[10:20]},
		{name: "last partial page", p: Pagination{ItemsPerPage: 10, CurrentPage: 3}, want: records[20:25]},
		{name: "defaults to first page of ten", p: Pagination{}, want: records[0:10]},
		{name: "page past the end is empty", p: Pagination{ItemsPerPage: 10, CurrentPage: 4}, want: []int{}},
		{name: "total equal to length still slices", p: Pagination{ItemsPerPage: 5, TotalItems: 25, CurrentPage: 2}, want: records[5:10]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(records, tt.p)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPaginate_ServerMode(t *testing.T) {
	page := []int{40, 41, 42}
	p := Pagination{ItemsPerPage: 3, TotalItems: 90, CurrentPage: 14}

	if !p.ServerMode(len(page)) {
		t.Fatal("expected server mode")
	}

	got := Paginate(page, p)
	if diff := cmp.Diff(page, got); diff != "" {
		t.Errorf("server mode must not slice (-want +got):\n%s", diff)
	}

	ctl := p.Controls(len(page))
	if ctl.PageCount != 30 {
		t.Errorf("PageCount = %d, want 30", ctl.PageCount)
	}
	if ctl.TotalItems != 90 {
		t.Errorf("TotalItems = %d, want 90", ctl.TotalItems)
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name           string
		current, pages int
		want           []int
	}{
		{"fewer than five pages", 2, 3, []int{1, 2, 3}},
		{"exactly five", 5, 5, []int{1, 2, 3, 4, 5}},
		{"single page", 1, 1, []int{1}},
		{"near start", 3, 10, []int{1, 2, 3, 4, 5}},
		{"first page", 1, 10, []int{1, 2, 3, 4, 5}},
		{"middle", 6, 10, []int{4, 5, 6, 7, 8}},
		{"near end", 8, 10, []int{6, 7, 8, 9, 10}},
		{"last page", 10, 10, []int{6, 7, 8, 9, 10}},
		{"just past start clamp", 4, 10, []int{2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageWindow(tt.current, tt.pages)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("PageWindow(%d, %d) (-want +got):\n%s", tt.current, tt.pages, diff)
			}
		})
	}
}

func TestControls(t *testing.T) {
	p := Pagination{ItemsPerPage: 10, CurrentPage: 1}

	ctl := p.Controls(5)
	if ctl.Visible {
		t.Error("single page should hide controls")
	}
	if ctl.HasPrev || ctl.HasNext {
		t.Errorf("single page: HasPrev=%v HasNext=%v", ctl.HasPrev, ctl.HasNext)
	}

	p.CurrentPage = 2
	ctl = p.Controls(30)
	if !ctl.Visible || !ctl.HasPrev || !ctl.HasNext {
		t.Errorf("middle page controls = %+v", ctl)
	}

	p.CurrentPage = 3
	ctl = p.Controls(30)
	if ctl.HasNext {
		t.Error("last page should not have next")
	}
}
