// Package identity derives the stable identifiers shared by every graph writer.
//
// Both the batch ingestion path (core/mapper) and the incremental path
// (core/reconcile) must compute exactly the same strings for the same
// (sheet, block ordinal, row index, column) tuple, otherwise cells written by
// one path would never link to nodes written by the other.
//
// # Identifiers
//
//   - Table: {sheet}_Table{ordinal}          e.g. "Sales_Table1"
//   - Row:   {table}_Row{rowIndex+1}         e.g. "Sales_Table1_Row3"
//   - Cell:  {table}!{Column}{rowIndex+1}    e.g. "Sales_Table1!C3"
//
// Row indices are 0-based positions in the sheet; the identifiers use the
// 1-based row numbers a spreadsheet user sees.
package identity
