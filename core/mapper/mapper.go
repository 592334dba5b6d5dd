// Package mapper turns detected blocks into graph upsert batches.
//
// The same cell-level shape (CellOps) is used by full ingestion and by the
// single-cell reconciler, so both paths produce identical graph state for the
// same cell content.
package mapper

import (
	"fmt"
	"strings"

	"sheet-graph/core/formula"
	"sheet-graph/core/graph"
	"sheet-graph/core/identity"
	"sheet-graph/core/registry"
	"sheet-graph/core/segment"
	"sheet-graph/core/sheet"
)

// Plan is the graph batch for one block plus its registry layout.
type Plan struct {
	Table registry.Table `json:"table"`
	Batch graph.Batch    `json:"batch"`
	Rows  int            `json:"rows"`
	Cells int            `json:"cells"`
}

// HeaderNames derives column names from a header row. Empty headers become
// Col{i+1} so that every column has a name.
func HeaderNames(header sheet.Row) []string {
	names := make([]string, len(header))
	for i, cell := range header {
		name := strings.TrimSpace(cell.Text())
		if name == "" {
			name = fmt.Sprintf("Col%d", i+1)
		}
		names[i] = name
	}
	return names
}

// BuildSheet segments a sheet and builds one plan per block, in block order.
func BuildSheet(s sheet.Sheet) []Plan {
	title := SheetTitle(s)
	blocks := segment.Split(s.Rows)
	plans := make([]Plan, 0, len(blocks))
	for i, block := range blocks {
		plans = append(plans, BuildBlock(title, s.Rows, block, i+1))
	}
	return plans
}

// SheetTitle returns the sheet's title, or the placeholder for untitled sheets.
func SheetTitle(s sheet.Sheet) string {
	if s.Title == "" {
		return sheet.UntitledSheet
	}
	return s.Title
}

// BuildBlock maps one block into a batch. ordinal is the block's 1-based position.
func BuildBlock(sheetTitle string, rows []sheet.Row, block segment.Block, ordinal int) Plan {
	tableName := identity.TableName(sheetTitle, ordinal)
	columns := HeaderNames(rowAt(rows, block.HeaderRow))

	plan := Plan{
		Table: registry.Table{
			Ordinal: ordinal,
			Name:    tableName,
			Block:   block,
			Columns: columns,
		},
		Batch: graph.Batch{Scope: tableName},
	}

	table := graph.Table(tableName)
	plan.Batch.Add(graph.UpsertNode(table, nil))
	for _, name := range columns {
		plan.Batch.Add(
			graph.UpsertNode(graph.Column(name), nil),
			graph.Link(graph.Column(name), graph.RelUsedIn, table),
		)
	}

	for _, r := range block.DataRows {
		row := rowAt(rows, r)
		if !hasPopulatedCell(row, len(columns)) {
			continue
		}

		rowID := identity.RowID(tableName, r)
		plan.Batch.Add(
			graph.UpsertNode(graph.Row(rowID), nil),
			graph.Link(table, graph.RelHasRow, graph.Row(rowID)),
		)
		plan.Rows++

		for c, column := range columns {
			if c >= len(row) || !row[c].Populated() {
				continue
			}
			plan.Batch.Add(CellOps(CellWrite{
				Table:   tableName,
				RowID:   rowID,
				CellID:  identity.CellID(tableName, identity.ColumnLetter(c), r),
				Column:  column,
				Value:   row[c].Text(),
				Formula: row[c].Expression(),
			})...)
			plan.Cells++
		}
	}

	return plan
}

// CellWrite is the state of one cell to be written.
type CellWrite struct {
	Table  string
	RowID  string
	CellID string
	// Column links the cell to an existing Column node; empty skips the link.
	Column string
	Value  string
	// Formula is the exact expression text; empty means the cell holds a constant.
	Formula string
}

// CellOps returns the upserts for one cell: the Cell itself, its Table, Column
// and Row links, and either its Constant or its Formula with dependencies.
func CellOps(w CellWrite) []graph.Op {
	cell := graph.Cell(w.CellID)
	ops := []graph.Op{
		graph.UpsertNode(cell, map[string]any{graph.PropRawValue: w.Value}),
		graph.Link(cell, graph.RelBelongsTo, graph.Table(w.Table)),
	}
	if w.Column != "" {
		ops = append(ops, graph.Link(cell, graph.RelHasColumn, graph.Column(w.Column)))
	}
	ops = append(ops, graph.Link(graph.Row(w.RowID), graph.RelHasCell, cell))

	if w.Formula == "" {
		// A cleared cell links to the Constant keyed by "".
		constant := graph.Constant(w.Value)
		ops = append(ops,
			graph.UpsertNode(constant, nil),
			graph.Link(cell, graph.RelUsesConstant, constant),
		)
		return ops
	}

	f := graph.Formula(w.Formula)
	ops = append(ops,
		graph.UpsertNode(f, nil),
		graph.Link(cell, graph.RelUsesFormula, f),
	)
	for _, dep := range formula.Dependencies(w.Formula, w.Table) {
		ops = append(ops,
			graph.UpsertNode(graph.Cell(dep), nil),
			graph.Link(f, graph.RelDependsOn, graph.Cell(dep)),
		)
	}
	return ops
}

func rowAt(rows []sheet.Row, i int) sheet.Row {
	if i < 0 || i >= len(rows) {
		return nil
	}
	return rows[i]
}

func hasPopulatedCell(row sheet.Row, width int) bool {
	for c := 0; c < width && c < len(row); c++ {
		if row[c].Populated() {
			return true
		}
	}
	return false
}
