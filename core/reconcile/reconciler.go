package reconcile

import (
	"context"
	"fmt"
	"time"

	"sheet-graph/core/graph"
	"sheet-graph/core/identity"
	"sheet-graph/core/mapper"
	"sheet-graph/core/registry"
	"sheet-graph/core/utils"

	"go.uber.org/zap"
)

// Reconciler applies single-cell change events to the graph using the layout
// recorded by the last full ingestion of the event's sheet.
type Reconciler struct {
	registry *registry.Registry
	store    graph.Store
	logger   *zap.Logger
	maxAge   time.Duration
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithMaxAge rejects events whose sheet layout is older than d. Zero disables the check.
func WithMaxAge(d time.Duration) Option {
	return func(r *Reconciler) {
		r.maxAge = d
	}
}

// NewReconciler creates a reconciler bound to a registry and a graph store.
func NewReconciler(reg *registry.Registry, store graph.Store, logger *zap.Logger, opts ...Option) *Reconciler {
	r := &Reconciler{
		registry: reg,
		store:    store,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Plan resolves the event against the registry and returns the batch that
// would be applied. It performs no writes. When the event cannot be resolved
// the result carries the reason and the batch is empty.
func (r *Reconciler) Plan(event Event) (*Result, graph.Batch) {
	result := &Result{Sheet: event.Sheet, Address: event.Address}

	column, rowNumber, err := identity.ParseAddress(event.Address)
	if err != nil {
		result.Reason = ReasonMalformedAddress
		return result, graph.Batch{}
	}
	rowIndex := rowNumber - 1

	entry, ok := r.registry.Get(event.Sheet)
	if !ok {
		result.Reason = ReasonUnregisteredSheet
		return result, graph.Batch{}
	}
	result.RegistryVersion = entry.Version

	if r.maxAge > 0 && entry.Age() > r.maxAge {
		result.Reason = ReasonStaleLayout
		return result, graph.Batch{}
	}

	table, ok := entry.Locate(rowIndex)
	if !ok {
		result.Reason = ReasonRowNotInBlock
		return result, graph.Batch{}
	}

	// Must match mapper.BuildBlock.
	tableName := identity.TableName(event.Sheet, table.Ordinal)
	rowID := identity.RowID(tableName, rowIndex)
	cellID := identity.CellID(tableName, column, rowIndex)

	// Ingestion maps only columns under the header, so neither does an update.
	idx, err := identity.ColumnIndex(column)
	if err != nil || idx >= len(table.Columns) {
		result.Reason = ReasonColumnNotInBlock
		return result, graph.Batch{}
	}
	columnName := table.Columns[idx]

	batch := graph.Batch{Scope: cellID}
	batch.Add(
		graph.UpsertNode(graph.Row(rowID), nil),
		graph.Link(graph.Table(tableName), graph.RelHasRow, graph.Row(rowID)),
	)
	batch.Add(mapper.CellOps(mapper.CellWrite{
		Table:   tableName,
		RowID:   rowID,
		CellID:  cellID,
		Column:  columnName,
		Value:   utils.ToString(event.Value),
		Formula: event.Formula,
	})...)

	result.Resolved = true
	result.Table = tableName
	result.RowID = rowID
	result.CellID = cellID
	result.Column = columnName
	result.Ops = batch.Len()
	return result, batch
}

// ReconcileCell applies one change event. Unresolvable events are logged and
// dropped without touching the graph; the returned result says why. An error is
// returned only when the graph write itself fails.
func (r *Reconciler) ReconcileCell(ctx context.Context, event Event) (*Result, error) {
	result, batch := r.Plan(event)
	if !result.Resolved {
		r.logger.Warn("Could not resolve table for cell update",
			zap.String("sheet", event.Sheet),
			zap.String("address", event.Address),
			zap.String("reason", string(result.Reason)),
		)
		return result, nil
	}

	if err := r.store.Apply(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to apply update for %s: %w", result.CellID, err)
	}

	r.logger.Debug("Cell reconciled",
		zap.String("cell", result.CellID),
		zap.Uint64("registry_version", result.RegistryVersion),
		zap.Int("ops", result.Ops),
	)
	return result, nil
}
