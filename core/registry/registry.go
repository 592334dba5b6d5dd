// Package registry holds the block layout of every sheet seen by the last full
// ingestion, so that single-cell updates can be mapped back to their tables.
//
// The registry is an explicitly owned object: construct one per process and
// pass it to both the ingestion service and the reconciler. Each Replace bumps
// a monotonically increasing version and stamps the entry with its write time.
package registry

import (
	"sort"
	"sync"
	"time"

	"sheet-graph/core/segment"
)

// Table is one registered block together with its derived names.
type Table struct {
	// Ordinal is the 1-based position of the block within the sheet.
	Ordinal int `json:"ordinal"`
	// Name is the persisted Table node name.
	Name string `json:"name"`
	// Block is the header and data row layout.
	Block segment.Block `json:"block"`
	// Columns are the column names in header order.
	Columns []string `json:"columns"`
}

// Entry is the registered layout of one sheet.
type Entry struct {
	Sheet     string    `json:"sheet"`
	Tables    []Table   `json:"tables"`
	Version   uint64    `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Age returns how long ago the entry was written.
func (e Entry) Age() time.Duration {
	return time.Since(e.UpdatedAt)
}

// Locate returns the first table whose data rows contain rowIndex.
func (e Entry) Locate(rowIndex int) (Table, bool) {
	for _, t := range e.Tables {
		if t.Block.Contains(rowIndex) {
			return t, true
		}
	}
	return Table{}, false
}

// Registry maps sheet names to their last registered layout.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	version uint64
	now     func() time.Time
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// Get returns the sheet's entry, if any.
func (r *Registry) Get(sheet string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[sheet]
	return e, ok
}

// Replace swaps the sheet's layout wholesale (last writer wins) and returns the new entry.
func (r *Registry) Replace(sheet string, tables []Table) Entry {
	cloned := cloneTables(tables)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.version++
	e := Entry{
		Sheet:     sheet,
		Tables:    cloned,
		Version:   r.version,
		UpdatedAt: r.now(),
	}
	r.entries[sheet] = e
	return e
}

// Restore installs an entry recorded earlier, keeping its timestamp. It never
// overwrites a layout registered during this process.
func (r *Registry) Restore(sheet string, tables []Table, updatedAt time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[sheet]; exists {
		return false
	}
	r.version++
	r.entries[sheet] = Entry{
		Sheet:     sheet,
		Tables:    cloneTables(tables),
		Version:   r.version,
		UpdatedAt: updatedAt,
	}
	return true
}

// Snapshot returns every entry, sorted by sheet name.
func (r *Registry) Snapshot() []Entry {
	r.mu.RLock()
	entries := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Sheet < entries[j].Sheet
	})
	return entries
}

// Len returns the number of registered sheets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func cloneTables(tables []Table) []Table {
	out := make([]Table, len(tables))
	for i, t := range tables {
		out[i] = Table{
			Ordinal: t.Ordinal,
			Name:    t.Name,
			Block: segment.Block{
				HeaderRow: t.Block.HeaderRow,
				DataRows:  append([]int(nil), t.Block.DataRows...),
			},
			Columns: append([]string(nil), t.Columns...),
		}
	}
	return out
}
