package ingest

import (
	"time"

	"sheet-graph/core/registry"
)

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// IngestionRun is one sheet of one ingestion pass.
type IngestionRun struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	PassID        string    `gorm:"size:36;index" json:"pass_id"`
	Source        string    `gorm:"size:32" json:"source"`
	SpreadsheetID string    `gorm:"size:255;index" json:"spreadsheet_id"`
	Sheet         string    `gorm:"size:255;index" json:"sheet"`
	Blocks        string    `gorm:"type:text" json:"blocks"`
	Tables        int       `json:"tables"`
	Rows          int       `json:"rows"`
	Cells         int       `json:"cells"`
	Ops           int       `json:"ops"`
	Status        string    `gorm:"size:16" json:"status"`
	Error         string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName overrides the table name used by IngestionRun.
func (IngestionRun) TableName() string {
	return "ingestion_runs"
}

// RequiredColumns lists the columns the history table must provide.
func RequiredColumns() []string {
	return []string{"id", "pass_id", "source", "spreadsheet_id", "sheet", "blocks", "tables", "rows", "cells", "ops", "status", "error", "created_at"}
}

// SheetReport is the outcome of ingesting one sheet.
type SheetReport struct {
	Sheet           string           `json:"sheet"`
	Tables          []registry.Table `json:"tables"`
	Rows            int              `json:"rows"`
	Cells           int              `json:"cells"`
	Ops             int              `json:"ops"`
	Status          string           `json:"status"`
	Error           string           `json:"error,omitempty"`
	RegistryVersion uint64           `json:"registry_version,omitempty"`
}

// Report is the outcome of one ingestion pass.
type Report struct {
	PassID        string        `json:"pass_id,omitempty"`
	Source        string        `json:"source"`
	SpreadsheetID string        `json:"spreadsheet_id"`
	DryRun        bool          `json:"dry_run"`
	Sheets        []SheetReport `json:"sheets"`
	// Nodes and Links are the distinct graph elements a dry run would write.
	Nodes int `json:"nodes,omitempty"`
	Links int `json:"links,omitempty"`
}

// StoredWorkbook is an XLSX object in the workbook bucket.
type StoredWorkbook struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}
