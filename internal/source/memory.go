package source

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/JonMunkholm/datatable/internal/datatable"
)

// Memory is an in-memory client-mode source.
type Memory struct {
	mu   sync.RWMutex
	rows []datatable.Record
}

// NewMemory creates a source holding rows.
func NewMemory(rows []datatable.Record) *Memory {
	return &Memory{rows: slices.Clone(rows)}
}

// Fetch returns every row. The returned slice is a copy, so callers may
// reorder it freely; the records themselves are shared.
func (m *Memory) Fetch(ctx context.Context, q Query) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return Result{
		Rows:  slices.Clone(m.rows),
		Total: int64(len(m.rows)),
		Page:  max(q.Page, 1),
	}, nil
}

// Count returns the number of rows held.
func (m *Memory) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.rows)), nil
}

// Mode returns ModeClient.
func (m *Memory) Mode() Mode { return ModeClient }

// ErrInvalidID is returned by Upsert for ids that are not a string, number
// or boolean.
var ErrInvalidID = errors.New("invalid id field")

// Upsert replaces the row whose idKey value matches, or appends it.
// Merging by id keeps realtime updates from inserting the same row twice.
// Ids match by their canonical form, so a JSON 7 (float64) replaces a row
// stored with int 7 or "7".
func (m *Memory) Upsert(idKey string, row datatable.Record) error {
	id, ok := CanonicalID(row[idKey])
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidID, idKey)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.rows {
		if other, ok := CanonicalID(existing[idKey]); ok && other == id {
			m.rows[i] = row
			return nil
		}
	}
	m.rows = append(m.rows, row)
	return nil
}

// CanonicalID returns the comparable form of a row id. Only scalars are
// ids; nil, empty strings, maps and slices report false.
func CanonicalID(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, id != ""
	case bool:
		return strconv.FormatBool(id), true
	case int:
		return strconv.Itoa(id), true
	case int32:
		return strconv.FormatInt(int64(id), 10), true
	case int64:
		return strconv.FormatInt(id, 10), true
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(id), 'f', -1, 32), true
	case fmt.Stringer:
		s := id.String()
		return s, s != ""
	}
	return "", false
}

// Replace swaps the held rows for rows.
func (m *Memory) Replace(rows []datatable.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = slices.Clone(rows)
}
