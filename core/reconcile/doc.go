// Package reconcile keeps the graph in sync with single-cell edits.
//
// A change event carries only an address, a sheet name and the new value or
// formula. The Reconciler maps it back to the table and row that owned the
// cell at the sheet's last full ingestion (via core/registry), derives the
// Cell and Row identifiers with core/identity, and applies the same cell-level
// upserts that ingestion uses (core/mapper.CellOps) as one batch.
//
// # Failing closed
//
// Events are rejected, and the graph is left untouched, when:
//   - the address cannot be parsed,
//   - the sheet has no registered layout (never ingested by this process),
//   - no registered block has the row among its data rows,
//   - the column lies past the block's header width,
//   - a maximum layout age is configured and the layout is older.
//
// Table and Column nodes are never created here. Relationships to them are
// merged only when the nodes already exist.
//
// Events are applied in arrival order. A late, stale event overwrites a newer
// value; there is no timestamp comparison.
package reconcile
