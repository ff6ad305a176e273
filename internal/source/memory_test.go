package source

import (
	"context"
	"errors"
	"testing"

	"github.com/JonMunkholm/datatable/internal/datatable"
)

func TestMemory_FetchReturnsCopy(t *testing.T) {
	m := NewMemory([]datatable.Record{{"id": 1}, {"id": 2}})

	res, err := m.Fetch(context.Background(), Query{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if res.Total != 2 || len(res.Rows) != 2 || res.Page != 1 {
		t.Fatalf("Fetch() = %+v", res)
	}

	res.Rows[0], res.Rows[1] = res.Rows[1], res.Rows[0]
	again, _ := m.Fetch(context.Background(), Query{})
	if again.Rows[0]["id"] != 1 {
		t.Error("reordering a fetched slice changed the source")
	}
}

func TestMemory_FetchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewMemory(nil).Fetch(ctx, Query{}); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestMemory_UpsertMergesByID(t *testing.T) {
	m := NewMemory([]datatable.Record{{"id": "a", "status": "new"}})

	for _, row := range []datatable.Record{
		{"id": "a", "status": "delivered"},
		{"id": "b", "status": "new"},
		{"id": "b", "status": "new"},
	} {
		if err := m.Upsert("id", row); err != nil {
			t.Fatalf("Upsert(%v) error = %v", row, err)
		}
	}

	n, _ := m.Count(context.Background())
	if n != 2 {
		t.Fatalf("Count() = %d, want 2", n)
	}
	res, _ := m.Fetch(context.Background(), Query{})
	if res.Rows[0]["status"] != "delivered" {
		t.Errorf("existing row not replaced: %v", res.Rows[0])
	}
	if m.Mode() != ModeClient {
		t.Errorf("Mode() = %v", m.Mode())
	}
}

func TestMemory_UpsertMatchesNumericIDsAcrossTypes(t *testing.T) {
	m := NewMemory([]datatable.Record{
		{"id": 7, "status": "new"},
		{"id": "8", "status": "new"},
	})

	// JSON bodies decode numbers as float64.
	for _, row := range []datatable.Record{
		{"id": 7.0, "status": "picked"},
		{"id": 8.0, "status": "picked"},
	} {
		if err := m.Upsert("id", row); err != nil {
			t.Fatalf("Upsert(%v) error = %v", row, err)
		}
	}

	res, _ := m.Fetch(context.Background(), Query{})
	if len(res.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 (no duplicates)", len(res.Rows))
	}
	for _, r := range res.Rows {
		if r["status"] != "picked" {
			t.Errorf("row %v not replaced", r)
		}
	}
}

func TestMemory_UpsertRejectsNonScalarIDs(t *testing.T) {
	m := NewMemory(nil)

	for _, id := range []any{map[string]any{"a": 1.0}, []any{1.0}, nil, ""} {
		// Twice, so a second comparison against a stored id would run.
		for range 2 {
			if err := m.Upsert("id", datatable.Record{"id": id}); !errors.Is(err, ErrInvalidID) {
				t.Errorf("Upsert(id=%v) error = %v, want ErrInvalidID", id, err)
			}
		}
	}
	if n, _ := m.Count(context.Background()); n != 0 {
		t.Errorf("Count() = %d, want 0", n)
	}
}

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		in   any
		want string
		ok   bool
	}{
		{"ord-1", "ord-1", true},
		{7, "7", true},
		{int64(7), "7", true},
		{7.0, "7", true},
		{2.5, "2.5", true},
		{true, "true", true},
		{"", "", false},
		{nil, "", false},
		{map[string]any{}, "", false},
	}
	for _, tt := range tests {
		got, ok := CanonicalID(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("CanonicalID(%v) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
