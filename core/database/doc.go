// Package database handles relational database connections and schema inspection.
//
// It wraps GORM to configure MySQL or SQLite connections from the application
// configuration. The database holds ingestion history only; the graph itself
// lives in core/graph.
//
// # Connect
//
// Connect opens the configured driver and verifies the connection with a ping
// bounded by TimeoutSeconds. SQLite connections are limited to a single open
// connection so that ":memory:" databases are shared across queries.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns (SHOW COLUMNS on MySQL, PRAGMA
// table_info on SQLite). MissingColumns compares them against the columns a
// model requires and backs the history check reported by the status feature.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("History disabled", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "ingestion_runs", []string{"id", "sheet"})
package database
