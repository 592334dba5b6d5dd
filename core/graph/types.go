package graph

import (
	"context"
	"errors"
	"fmt"
)

// Label is a node label.
type Label string

const (
	LabelTable    Label = "Table"
	LabelRow      Label = "Row"
	LabelColumn   Label = "Column"
	LabelCell     Label = "Cell"
	LabelFormula  Label = "Formula"
	LabelConstant Label = "Constant"
)

// KeyProperty returns the property that identifies nodes with this label.
func (l Label) KeyProperty() string {
	switch l {
	case LabelTable, LabelColumn:
		return "name"
	case LabelRow, LabelCell:
		return "id"
	case LabelFormula:
		return "expression"
	case LabelConstant:
		return "value"
	default:
		return ""
	}
}

// RelType is a relationship type.
type RelType string

const (
	RelHasRow       RelType = "HAS_ROW"
	RelHasCell      RelType = "HAS_CELL"
	RelHasColumn    RelType = "HAS_COLUMN"
	RelBelongsTo    RelType = "BELONGS_TO"
	RelUsedIn       RelType = "USED_IN"
	RelUsesFormula  RelType = "USES_FORMULA"
	RelUsesConstant RelType = "USES_CONSTANT"
	RelDependsOn    RelType = "DEPENDS_ON"
)

// PropRawValue is the Cell property holding the formatted value.
const PropRawValue = "raw_value"

// NodeRef identifies a node by label and key value.
type NodeRef struct {
	Label Label  `json:"label"`
	Key   string `json:"key"`
}

func (n NodeRef) String() string {
	return fmt.Sprintf("(%s %s)", n.Label, n.Key)
}

// Ref helpers.
func Table(name string) NodeRef         { return NodeRef{Label: LabelTable, Key: name} }
func Row(id string) NodeRef             { return NodeRef{Label: LabelRow, Key: id} }
func Column(name string) NodeRef        { return NodeRef{Label: LabelColumn, Key: name} }
func Cell(id string) NodeRef            { return NodeRef{Label: LabelCell, Key: id} }
func Formula(expression string) NodeRef { return NodeRef{Label: LabelFormula, Key: expression} }
func Constant(value string) NodeRef     { return NodeRef{Label: LabelConstant, Key: value} }

// OpKind distinguishes node upserts from relationship merges.
type OpKind string

const (
	// OpUpsertNode creates the node if absent and merges Props into it.
	OpUpsertNode OpKind = "upsert_node"
	// OpLink merges a relationship between two nodes that must already exist.
	// When either endpoint is missing the operation is a no-op.
	OpLink OpKind = "link"
)

// Op is one idempotent graph write.
type Op struct {
	Kind  OpKind         `json:"kind"`
	Node  NodeRef        `json:"node,omitempty"`
	Props map[string]any `json:"props,omitempty"`
	From  NodeRef        `json:"from,omitempty"`
	Rel   RelType        `json:"rel,omitempty"`
	To    NodeRef        `json:"to,omitempty"`
}

// UpsertNode builds a node upsert.
func UpsertNode(node NodeRef, props map[string]any) Op {
	return Op{Kind: OpUpsertNode, Node: node, Props: props}
}

// Link builds a relationship merge.
func Link(from NodeRef, rel RelType, to NodeRef) Op {
	return Op{Kind: OpLink, From: from, Rel: rel, To: to}
}

// Batch groups operations that a store applies together, in order.
type Batch struct {
	// Scope describes what the batch covers (e.g. a table name or a cell id) for logging.
	Scope string `json:"scope"`
	Ops   []Op   `json:"ops"`
}

// Add appends operations to the batch.
func (b *Batch) Add(ops ...Op) {
	b.Ops = append(b.Ops, ops...)
}

// Len returns the number of operations.
func (b *Batch) Len() int {
	return len(b.Ops)
}

// Stats summarises a batch by operation type.
type Stats struct {
	Nodes map[Label]int   `json:"nodes"`
	Links map[RelType]int `json:"links"`
}

// Stats counts the operations of a batch per label and relationship type.
func (b *Batch) Stats() Stats {
	s := Stats{Nodes: map[Label]int{}, Links: map[RelType]int{}}
	for _, op := range b.Ops {
		switch op.Kind {
		case OpUpsertNode:
			s.Nodes[op.Node.Label]++
		case OpLink:
			s.Links[op.Rel]++
		}
	}
	return s
}

// ErrQueryUnsupported is returned by stores that cannot execute Cypher text.
var ErrQueryUnsupported = errors.New("store does not support query execution")

// Store persists graph batches and answers read queries.
type Store interface {
	// Apply executes every operation of the batch. Implementations apply a batch
	// atomically where the backend allows it; no atomicity spans batches.
	Apply(ctx context.Context, batch Batch) error
	// Query executes a read query verbatim and returns its records.
	Query(ctx context.Context, query string) ([]map[string]any, error)
	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
	// Close releases the store's resources.
	Close(ctx context.Context) error
}
