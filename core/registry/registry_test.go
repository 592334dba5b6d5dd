package registry

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"sheet-graph/core/segment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(ordinal, header int, rows ...int) Table {
	return Table{
		Ordinal: ordinal,
		Name:    fmt.Sprintf("Sales_Table%d", ordinal),
		Block:   segment.Block{HeaderRow: header, DataRows: rows},
		Columns: []string{"Name", "Amount"},
	}
}

func TestRegistry_ReplaceAndGet(t *testing.T) {
	r := New()

	_, ok := r.Get("Sales")
	assert.False(t, ok)

	first := r.Replace("Sales", []Table{table(1, 0, 1, 2)})
	second := r.Replace("Sales", []Table{table(1, 0, 1), table(2, 3, 4)})
	assert.Greater(t, second.Version, first.Version)

	e, ok := r.Get("Sales")
	require.True(t, ok)
	assert.Equal(t, second.Version, e.Version)
	require.Len(t, e.Tables, 2)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ReplaceCopiesInput(t *testing.T) {
	r := New()
	tables := []Table{table(1, 0, 1, 2)}
	r.Replace("Sales", tables)

	tables[0].Block.DataRows[0] = 99
	tables[0].Columns[0] = "Changed"

	e, _ := r.Get("Sales")
	assert.Equal(t, []int{1, 2}, e.Tables[0].Block.DataRows)
	assert.Equal(t, "Name", e.Tables[0].Columns[0])
}

func TestEntry_Locate(t *testing.T) {
	r := New()
	r.Replace("Sales", []Table{table(1, 0, 1, 2), table(2, 3, 4, 5)})
	e, _ := r.Get("Sales")

	tb, ok := e.Locate(4)
	require.True(t, ok)
	assert.Equal(t, 2, tb.Ordinal)

	_, ok = e.Locate(3) // header rows are not data rows
	assert.False(t, ok)
	_, ok = e.Locate(42)
	assert.False(t, ok)
}

func TestRegistry_Restore(t *testing.T) {
	r := New()
	recorded := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.True(t, r.Restore("Old", []Table{table(1, 0, 1)}, recorded))
	e, ok := r.Get("Old")
	require.True(t, ok)
	assert.Equal(t, recorded, e.UpdatedAt)

	r.Replace("Live", []Table{table(1, 0, 1)})
	assert.False(t, r.Restore("Live", nil, recorded))
	live, _ := r.Get("Live")
	assert.Len(t, live.Tables, 1)
}

func TestRegistry_Snapshot(t *testing.T) {
	r := New()
	r.Replace("b", nil)
	r.Replace("a", nil)

	snap := r.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "a", snap[0].Sheet)
	assert.Equal(t, "b", snap[1].Sheet)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Replace("Sales", []Table{table(1, 0, 1)})
		}()
		go func() {
			defer wg.Done()
			r.Get("Sales")
			r.Snapshot()
		}()
	}
	wg.Wait()

	e, ok := r.Get("Sales")
	require.True(t, ok)
	assert.Equal(t, uint64(16), e.Version)
}
