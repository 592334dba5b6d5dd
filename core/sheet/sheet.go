// Package sheet defines the point-in-time spreadsheet snapshot consumed by
// ingestion, and the Source interface implemented by the concrete readers
// (Google Sheets in sheet/gsheets, XLSX workbooks in sheet/xlsx).
package sheet

import (
	"context"
	"strings"
)

// Cell is one grid cell. Value holds the formatted (already computed) value and
// Formula the user-entered expression; either may be absent.
type Cell struct {
	Value   *string `json:"formattedValue,omitempty"`
	Formula *string `json:"formulaValue,omitempty"`
}

// Populated reports whether the cell carries a value.
func (c Cell) Populated() bool {
	return c.Value != nil
}

// Text returns the formatted value, or "" when absent.
func (c Cell) Text() string {
	if c.Value == nil {
		return ""
	}
	return *c.Value
}

// Expression returns the formula text, or "" when absent.
func (c Cell) Expression() string {
	if c.Formula == nil {
		return ""
	}
	return *c.Formula
}

// Row is an ordered list of cells.
type Row []Cell

// Sheet is a named grid of ordered rows.
type Sheet struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// Workbook is a snapshot of every sheet in one spreadsheet.
type Workbook struct {
	ID     string  `json:"id"`
	Sheets []Sheet `json:"sheets"`
}

// Source fetches workbook snapshots by identifier.
type Source interface {
	// Name identifies the source in logs and ingestion history.
	Name() string
	// Fetch returns a full snapshot of the workbook.
	Fetch(ctx context.Context, id string) (*Workbook, error)
}

// NewCell builds a cell from raw strings. An empty value or formula is treated as absent.
func NewCell(value, formula string) Cell {
	var c Cell
	if value != "" {
		v := value
		c.Value = &v
	}
	if strings.TrimSpace(formula) != "" {
		f := formula
		c.Formula = &f
	}
	return c
}

// Values builds a row of constant cells, mostly for tests and fixtures.
func Values(values ...string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = NewCell(v, "")
	}
	return row
}

// UntitledSheet is used when a source reports a sheet without a title.
const UntitledSheet = "Unnamed"
