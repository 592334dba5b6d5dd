// Package ingest implements full-workbook ingestion into the graph.
//
// A pass fetches a workbook snapshot from one of the configured sources,
// segments every sheet into blocks, applies each block's batch to the graph
// store as one write, and then replaces the sheet's entry in the block
// registry. Concurrent requests for the same workbook collapse into one pass.
//
// # History
//
// When a database is configured, each sheet of each pass is recorded in the
// ingestion_runs table together with its block layout. The history backs
// GET /status/history and, when enabled, warms the registry on start.
//
// # Endpoints
//
//   - POST /ingest: ingest a Google Sheets spreadsheet by id
//   - POST /ingest/object: ingest an XLSX object from the workbook bucket
//   - POST /ingest/upload: upload an XLSX workbook to the bucket and ingest it
//
// Every endpoint accepts ?dry_run=true, which builds the batches against an
// in-memory graph without touching the store, the registry or the history.
package ingest
