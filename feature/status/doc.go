// Package status reports the health of the service's dependencies and the
// contents of the block registry.
//
// # Checks Provided
//
//   - Graph: pings the graph store.
//   - History: verifies the ingestion_runs table has every required column.
//   - Storage: verifies the workbook bucket exists.
//
// History and Storage accept ?fix=true, which migrates the history table or
// creates the bucket. Checks run concurrently; a failing check never hides the
// others.
//
// # HTTP Endpoints
//
//   - GET /status : runs all checks and lists the registered sheet layouts.
//   - GET /status/registry/:sheet : returns one sheet's registered layout.
//   - GET /status/history : lists recent ingestion runs (?limit=N).
package status
