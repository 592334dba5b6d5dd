package cmd

import (
	"context"
	"fmt"

	"sheet-graph/core/config"
	"sheet-graph/core/database"
	"sheet-graph/core/graph"
	"sheet-graph/core/logger"
	"sheet-graph/core/registry"
	"sheet-graph/core/sheet/gsheets"
	"sheet-graph/core/sheet/xlsx"
	"sheet-graph/core/storage"
	"sheet-graph/feature/ingest"

	"go.uber.org/zap"
)

// services holds the shared dependencies of every command.
type services struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    graph.Store
	registry *registry.Registry
	history  *ingest.History
	client   storage.Client
	ingest   *ingest.Service
}

type bootstrapOptions struct {
	// memoryGraph replaces Neo4j with an in-memory store (dry runs).
	memoryGraph bool
	// consoleLog forces console logging for interactive commands.
	consoleLog bool
}

// bootstrap loads configuration and connects every dependency. Optional
// dependencies (history database, object storage, Google Sheets) are logged
// and skipped when they cannot be created; the graph store is required.
func bootstrap(ctx context.Context, opts bootstrapOptions) (*services, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.consoleLog {
		cfg.Log.Format = "console"
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	rt := &services{cfg: cfg, logger: logg, registry: registry.New()}

	if opts.memoryGraph {
		rt.store = graph.NewMemoryStore()
	} else {
		neo, err := graph.NewNeo4jStore(cfg.Graph)
		if err != nil {
			return nil, err
		}
		if cfg.Graph.EnsureIndexes {
			if err := neo.EnsureIndexes(ctx); err != nil {
				logg.Warn("Failed to create graph indexes", zap.Error(err))
			}
		}
		rt.store = neo
	}

	if db, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed, ingestion history disabled", zap.Error(err))
		rt.history = ingest.NewHistory(nil)
	} else {
		rt.history = ingest.NewHistory(db)
		if err := rt.history.Migrate(); err != nil {
			logg.Warn("Failed to migrate ingestion history", zap.Error(err))
		}
	}

	sources := ingest.Sources{ingest.SourceFile: xlsx.NewFileSource()}

	if client, err := storage.NewClient(cfg.Storage); err != nil {
		logg.Warn("Object storage disabled", zap.Error(err))
	} else {
		rt.client = client
		sources[ingest.SourceObject] = xlsx.NewObjectSource(client, cfg.Storage.Bucket)
	}

	if src, err := gsheets.NewSource(ctx, cfg.Sheets); err != nil {
		logg.Warn("Google Sheets source disabled", zap.Error(err))
	} else {
		sources[ingest.SourceSheets] = src
	}

	rt.ingest = ingest.NewService(sources, rt.store, rt.registry, rt.history, rt.client, cfg.Storage.Bucket, logg)

	if cfg.Registry.RestoreOnStart {
		n, err := rt.ingest.RestoreRegistry(ctx)
		if err != nil {
			logg.Warn("Failed to restore block registry", zap.Error(err))
		} else {
			logg.Info("Block registry restored", zap.Int("sheets", n))
		}
	}

	return rt, nil
}

// Close releases the graph store and flushes the logger.
func (rt *services) Close(ctx context.Context) {
	if err := rt.store.Close(ctx); err != nil {
		rt.logger.Warn("Failed to close graph store", zap.Error(err))
	}
	_ = rt.logger.Sync()
}
