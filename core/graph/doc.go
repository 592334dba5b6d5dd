// Package graph models the spreadsheet property graph and the stores that persist it.
//
// Writers never talk to a database directly. They describe their intent as a
// Batch of idempotent operations (node upserts and relationship merges keyed
// by the identity rules in core/identity) and hand the batch to a Store.
//
// # Stores
//
//   - Neo4jStore: executes each batch as MERGE statements inside one managed
//     write transaction, so a block (or a single-cell update) lands atomically.
//   - MemoryStore: an in-process graph with the same upsert semantics, used by
//     tests and by dry-run ingestion.
//
// # Node keys
//
//	Table{name} Row{id} Column{name} Cell{id, raw_value} Formula{expression} Constant{value}
package graph
