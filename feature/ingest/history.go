package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"sheet-graph/core/registry"

	"gorm.io/gorm"
)

// History persists ingestion runs. A History without a database is disabled
// and every method is a no-op.
type History struct {
	db *gorm.DB
}

// NewHistory creates a history backed by db, which may be nil.
func NewHistory(db *gorm.DB) *History {
	return &History{db: db}
}

// Enabled reports whether a database is configured.
func (h *History) Enabled() bool {
	return h != nil && h.db != nil
}

// DB returns the underlying connection, or nil when disabled.
func (h *History) DB() *gorm.DB {
	if !h.Enabled() {
		return nil
	}
	return h.db
}

// Migrate creates or updates the ingestion_runs table.
func (h *History) Migrate() error {
	if !h.Enabled() {
		return nil
	}
	return h.db.AutoMigrate(&IngestionRun{})
}

// Record stores one run.
func (h *History) Record(ctx context.Context, run *IngestionRun) error {
	if !h.Enabled() {
		return nil
	}
	if err := h.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record ingestion run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (h *History) List(ctx context.Context, limit int) ([]IngestionRun, error) {
	runs := []IngestionRun{}
	if !h.Enabled() {
		return runs, nil
	}
	if limit <= 0 {
		limit = 50
	}
	err := h.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ingestion runs: %w", err)
	}
	return runs, nil
}

// LatestSuccessful returns the newest successful run of every sheet.
func (h *History) LatestSuccessful(ctx context.Context) ([]IngestionRun, error) {
	if !h.Enabled() {
		return nil, nil
	}
	var runs []IngestionRun
	err := h.db.WithContext(ctx).
		Where("status = ?", StatusOK).
		Order("created_at desc").
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load ingestion runs: %w", err)
	}

	seen := make(map[string]bool)
	latest := make([]IngestionRun, 0, len(runs))
	for _, run := range runs {
		if seen[run.Sheet] {
			continue
		}
		seen[run.Sheet] = true
		latest = append(latest, run)
	}
	return latest, nil
}

// BlockLayout decodes the tables stored with a run.
func (r IngestionRun) BlockLayout() ([]registry.Table, error) {
	var tables []registry.Table
	if r.Blocks == "" {
		return tables, nil
	}
	if err := json.Unmarshal([]byte(r.Blocks), &tables); err != nil {
		return nil, fmt.Errorf("invalid block layout for run %s: %w", r.ID, err)
	}
	return tables, nil
}
