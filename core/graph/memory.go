package graph

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type edge struct {
	from NodeRef
	rel  RelType
	to   NodeRef
}

// MemoryStore is an in-process Store with MERGE semantics.
type MemoryStore struct {
	mu    sync.RWMutex
	nodes map[NodeRef]map[string]any
	edges map[edge]struct{}
}

// NewMemoryStore creates an empty in-memory graph.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nodes: make(map[NodeRef]map[string]any),
		edges: make(map[edge]struct{}),
	}
}

// Apply executes the batch under one lock, so readers see all or none of it.
func (m *MemoryStore) Apply(ctx context.Context, batch Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, op := range batch.Ops {
		switch op.Kind {
		case OpUpsertNode:
			if op.Node.Label.KeyProperty() == "" {
				return fmt.Errorf("unknown label %q", op.Node.Label)
			}
			props, ok := m.nodes[op.Node]
			if !ok {
				props = map[string]any{}
				m.nodes[op.Node] = props
			}
			for k, v := range op.Props {
				props[k] = v
			}
		case OpLink:
			_, fromOK := m.nodes[op.From]
			_, toOK := m.nodes[op.To]
			if !fromOK || !toOK {
				// MATCH found nothing; MERGE never runs.
				continue
			}
			m.edges[edge{from: op.From, rel: op.Rel, to: op.To}] = struct{}{}
		default:
			return fmt.Errorf("unknown operation kind %q", op.Kind)
		}
	}
	return nil
}

// Query is not supported; the in-memory graph has no Cypher engine.
func (m *MemoryStore) Query(ctx context.Context, query string) ([]map[string]any, error) {
	return nil, ErrQueryUnsupported
}

func (m *MemoryStore) Ping(ctx context.Context) error  { return nil }
func (m *MemoryStore) Close(ctx context.Context) error { return nil }

// Node returns a copy of the node's properties.
func (m *MemoryStore) Node(ref NodeRef) (map[string]any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	props, ok := m.nodes[ref]
	if !ok {
		return nil, false
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out, true
}

// HasLink reports whether the relationship exists.
func (m *MemoryStore) HasLink(from NodeRef, rel RelType, to NodeRef) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.edges[edge{from: from, rel: rel, to: to}]
	return ok
}

// Out returns the targets of from's outgoing rel relationships, sorted by key.
func (m *MemoryStore) Out(from NodeRef, rel RelType) []NodeRef {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var refs []NodeRef
	for e := range m.edges {
		if e.from == from && e.rel == rel {
			refs = append(refs, e.to)
		}
	}
	sortRefs(refs)
	return refs
}

// In returns the sources of to's incoming rel relationships, sorted by key.
func (m *MemoryStore) In(to NodeRef, rel RelType) []NodeRef {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var refs []NodeRef
	for e := range m.edges {
		if e.to == to && e.rel == rel {
			refs = append(refs, e.from)
		}
	}
	sortRefs(refs)
	return refs
}

// NodeCount returns the number of nodes with the label.
func (m *MemoryStore) NodeCount(label Label) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for ref := range m.nodes {
		if ref.Label == label {
			n++
		}
	}
	return n
}

// LinkCount returns the number of relationships of the type.
func (m *MemoryStore) LinkCount(rel RelType) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for e := range m.edges {
		if e.rel == rel {
			n++
		}
	}
	return n
}

// Size returns the total node and relationship counts.
func (m *MemoryStore) Size() (nodes, links int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.nodes), len(m.edges)
}

func sortRefs(refs []NodeRef) {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Label != refs[j].Label {
			return refs[i].Label < refs[j].Label
		}
		return refs[i].Key < refs[j].Key
	})
}
