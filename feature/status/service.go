package status

import (
	"context"
	"errors"

	"sheet-graph/core/database"
	"sheet-graph/core/graph"
	"sheet-graph/core/registry"
	"sheet-graph/core/storage"
	"sheet-graph/feature/ingest"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	StateOK       = "ok"
	StateError    = "error"
	StateMissing  = "missing"
	StateFixed    = "fixed"
	StateDisabled = "disabled"
)

// Check is the outcome of one dependency check.
type Check struct {
	Status  string   `json:"status"`
	Error   string   `json:"error,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

// Report combines every check with the registry contents.
type Report struct {
	Graph    Check            `json:"graph"`
	History  Check            `json:"history"`
	Storage  Check            `json:"storage"`
	Registry []registry.Entry `json:"registry"`
}

// Service runs status checks.
type Service struct {
	store    graph.Store
	registry *registry.Registry
	history  *ingest.History
	client   storage.Client
	bucket   string
	logger   *zap.Logger
}

// NewService creates a new status service. history and client may be nil.
func NewService(store graph.Store, reg *registry.Registry, history *ingest.History, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		registry: reg,
		history:  history,
		client:   client,
		bucket:   bucket,
		logger:   logger,
	}
}

// Run executes all checks concurrently. With fix set, repairable problems are repaired.
func (s *Service) Run(ctx context.Context, fix bool) Report {
	var report Report
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.Graph = s.CheckGraph(gctx)
		return nil
	})
	g.Go(func() error {
		report.History = s.CheckHistory(gctx, fix)
		return nil
	})
	g.Go(func() error {
		report.Storage = s.CheckStorage(gctx, fix)
		return nil
	})
	_ = g.Wait()

	report.Registry = s.registry.Snapshot()
	return report
}

// CheckGraph pings the graph store.
func (s *Service) CheckGraph(ctx context.Context) Check {
	if err := s.store.Ping(ctx); err != nil {
		return Check{Status: StateError, Error: err.Error()}
	}
	return Check{Status: StateOK}
}

// CheckHistory verifies the history table schema.
func (s *Service) CheckHistory(ctx context.Context, fix bool) Check {
	if !s.history.Enabled() {
		return Check{Status: StateDisabled}
	}
	db := s.history.DB().WithContext(ctx)

	missing, err := database.MissingColumns(db, ingest.IngestionRun{}.TableName(), ingest.RequiredColumns())
	if err != nil {
		return Check{Status: StateError, Error: err.Error()}
	}
	if len(missing) == 0 {
		return Check{Status: StateOK}
	}
	if !fix {
		return Check{Status: StateMissing, Missing: missing}
	}

	s.logger.Info("Migrating ingestion history", zap.Strings("missing", missing))
	if err := s.history.Migrate(); err != nil {
		return Check{Status: StateError, Error: err.Error(), Missing: missing}
	}
	return Check{Status: StateFixed, Missing: missing}
}

// CheckStorage verifies the workbook bucket exists.
func (s *Service) CheckStorage(ctx context.Context, fix bool) Check {
	if s.client == nil || s.bucket == "" {
		return Check{Status: StateDisabled}
	}
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return Check{Status: StateError, Error: err.Error()}
	}
	if exists {
		return Check{Status: StateOK}
	}
	if !fix {
		return Check{Status: StateMissing, Missing: []string{s.bucket}}
	}
	if err := storage.EnsureBucket(ctx, s.client, s.bucket); err != nil {
		return Check{Status: StateError, Error: err.Error(), Missing: []string{s.bucket}}
	}
	return Check{Status: StateFixed, Missing: []string{s.bucket}}
}

// ErrSheetNotRegistered is returned for sheets without a registered layout.
var ErrSheetNotRegistered = errors.New("sheet is not registered")

// Layout returns the registered layout of a sheet.
func (s *Service) Layout(sheet string) (registry.Entry, error) {
	entry, ok := s.registry.Get(sheet)
	if !ok {
		return registry.Entry{}, ErrSheetNotRegistered
	}
	return entry, nil
}

// History returns the most recent ingestion runs.
func (s *Service) History(ctx context.Context, limit int) ([]ingest.IngestionRun, error) {
	return s.history.List(ctx, limit)
}
