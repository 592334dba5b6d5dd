// Package config provides configuration management for the sheet graph service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each
// section, so every key is also reachable as SECTION_KEY in the environment.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port, API key, body limit
//   - Log: Logging level and format
//   - Graph: Neo4j connection
//   - Storage: S3/MinIO credentials and the workbook bucket
//   - Database: ingestion history (MySQL or SQLite)
//   - Sheets: Google Sheets API credentials
//   - LLM: question answering model
//   - Registry: layout max age and restore on start
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Graph.URI)
package config
