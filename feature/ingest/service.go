package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"sheet-graph/core/graph"
	"sheet-graph/core/mapper"
	"sheet-graph/core/registry"
	"sheet-graph/core/sheet"
	"sheet-graph/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	SourceSheets = "sheets"
	SourceObject = "object"
	SourceFile   = "file"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	// ErrUnknownSource is returned for a source kind that is not configured.
	ErrUnknownSource = errors.New("unknown source")
	// ErrFetch wraps failures of the upstream workbook source.
	ErrFetch = errors.New("failed to fetch workbook")
	// ErrStorageUnavailable is returned for uploads when no bucket is configured.
	ErrStorageUnavailable = errors.New("object storage is not configured")
)

// Sources maps source kinds (SourceSheets, SourceObject, SourceFile) to readers.
type Sources map[string]sheet.Source

// Service runs ingestion passes.
type Service struct {
	sources  Sources
	store    graph.Store
	registry *registry.Registry
	history  *History
	client   storage.Client
	bucket   string
	logger   *zap.Logger
	group    singleflight.Group
}

// NewService creates a new ingestion service. client may be nil when uploads
// are not needed; history may be disabled.
func NewService(sources Sources, store graph.Store, reg *registry.Registry, history *History, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		sources:  sources,
		store:    store,
		registry: reg,
		history:  history,
		client:   client,
		bucket:   bucket,
		logger:   logger,
	}
}

// Ingest runs a full pass over the workbook. Concurrent calls for the same
// source and id share one pass and its result.
func (s *Service) Ingest(ctx context.Context, source, id string) (*Report, error) {
	v, err, shared := s.group.Do(source+":"+id, func() (any, error) {
		return s.ingest(ctx, source, id)
	})
	if shared {
		s.logger.Debug("Joined running ingestion", zap.String("source", source), zap.String("id", id))
	}
	report, _ := v.(*Report)
	return report, err
}

func (s *Service) ingest(ctx context.Context, source, id string) (*Report, error) {
	wb, err := s.fetch(ctx, source, id)
	if err != nil {
		return nil, err
	}

	report := &Report{PassID: uuid.NewString(), Source: source, SpreadsheetID: id}
	l := s.logger.With(zap.String("source", source), zap.String("id", id), zap.String("pass_id", report.PassID))
	l.Info("Ingestion started", zap.Int("sheets", len(wb.Sheets)))

	for _, sh := range wb.Sheets {
		title := mapper.SheetTitle(sh)
		plans := mapper.BuildSheet(sh)
		sr := SheetReport{Sheet: title, Status: StatusOK, Tables: []registry.Table{}}

		var applyErr error
		for _, p := range plans {
			if err := s.store.Apply(ctx, p.Batch); err != nil {
				applyErr = fmt.Errorf("failed to write %s: %w", p.Table.Name, err)
				break
			}
			sr.Tables = append(sr.Tables, p.Table)
			sr.Rows += p.Rows
			sr.Cells += p.Cells
			sr.Ops += p.Batch.Len()
		}

		if applyErr != nil {
			sr.Status = StatusFailed
			sr.Error = applyErr.Error()
			s.record(ctx, l, report, sr)
			report.Sheets = append(report.Sheets, sr)
			l.Error("Ingestion aborted", zap.String("sheet", title), zap.Error(applyErr))
			return report, applyErr
		}

		entry := s.registry.Replace(title, sr.Tables)
		sr.RegistryVersion = entry.Version
		s.record(ctx, l, report, sr)
		report.Sheets = append(report.Sheets, sr)

		l.Info("Sheet ingested",
			zap.String("sheet", title),
			zap.Int("tables", len(sr.Tables)),
			zap.Int("rows", sr.Rows),
			zap.Int("cells", sr.Cells),
			zap.Uint64("registry_version", entry.Version))
	}

	l.Info("Ingestion completed")
	return report, nil
}

// Plan builds every batch of a pass against an in-memory graph. Neither the
// store, the registry nor the history is touched.
func (s *Service) Plan(ctx context.Context, source, id string) (*Report, error) {
	wb, err := s.fetch(ctx, source, id)
	if err != nil {
		return nil, err
	}

	mem := graph.NewMemoryStore()
	report := &Report{Source: source, SpreadsheetID: id, DryRun: true}
	for _, sh := range wb.Sheets {
		sr := SheetReport{Sheet: mapper.SheetTitle(sh), Status: StatusOK, Tables: []registry.Table{}}
		for _, p := range mapper.BuildSheet(sh) {
			if err := mem.Apply(ctx, p.Batch); err != nil {
				return nil, err
			}
			sr.Tables = append(sr.Tables, p.Table)
			sr.Rows += p.Rows
			sr.Cells += p.Cells
			sr.Ops += p.Batch.Len()
		}
		report.Sheets = append(report.Sheets, sr)
	}
	report.Nodes, report.Links = mem.Size()
	return report, nil
}

// Upload stores an XLSX workbook in the bucket under name.
func (s *Service) Upload(ctx context.Context, name string, r io.Reader, size int64) error {
	if s.client == nil || s.bucket == "" {
		return ErrStorageUnavailable
	}
	if err := storage.EnsureBucket(ctx, s.client, s.bucket); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{ContentType: xlsxContentType})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	s.logger.Info("Workbook uploaded", zap.String("object", name), zap.Int64("size", size))
	return nil
}

// Workbooks lists the XLSX objects stored in the bucket.
func (s *Service) Workbooks(ctx context.Context) ([]StoredWorkbook, error) {
	if s.client == nil || s.bucket == "" {
		return nil, ErrStorageUnavailable
	}

	workbooks := []StoredWorkbook{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list workbooks: %w", obj.Err)
		}
		if !strings.EqualFold(path.Ext(obj.Key), ".xlsx") {
			continue
		}
		workbooks = append(workbooks, StoredWorkbook{
			Name:         obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return workbooks, nil
}

// RemoveWorkbook deletes a stored workbook. Graph nodes ingested from it stay.
func (s *Service) RemoveWorkbook(ctx context.Context, name string) error {
	if s.client == nil || s.bucket == "" {
		return ErrStorageUnavailable
	}
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	s.logger.Info("Workbook removed", zap.String("object", name))
	return nil
}

// RestoreRegistry warms the registry with the newest successful layout of
// every sheet in the history. Sheets already registered are left alone.
func (s *Service) RestoreRegistry(ctx context.Context) (int, error) {
	runs, err := s.history.LatestSuccessful(ctx)
	if err != nil {
		return 0, err
	}

	restored := 0
	for _, run := range runs {
		tables, err := run.BlockLayout()
		if err != nil {
			s.logger.Warn("Skipping unreadable layout", zap.String("sheet", run.Sheet), zap.Error(err))
			continue
		}
		if s.registry.Restore(run.Sheet, tables, run.CreatedAt) {
			restored++
		}
	}
	return restored, nil
}

// History returns the service's history.
func (s *Service) History() *History {
	return s.history
}

func (s *Service) fetch(ctx context.Context, source, id string) (*sheet.Workbook, error) {
	src, ok := s.sources[source]
	if !ok || src == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}
	wb, err := src.Fetch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return wb, nil
}

func (s *Service) record(ctx context.Context, l *zap.Logger, report *Report, sr SheetReport) {
	if !s.history.Enabled() {
		return
	}
	blocks, err := json.Marshal(sr.Tables)
	if err != nil {
		l.Warn("Failed to encode block layout", zap.Error(err))
		return
	}
	run := &IngestionRun{
		ID:            uuid.NewString(),
		PassID:        report.PassID,
		Source:        report.Source,
		SpreadsheetID: report.SpreadsheetID,
		Sheet:         sr.Sheet,
		Blocks:        string(blocks),
		Tables:        len(sr.Tables),
		Rows:          sr.Rows,
		Cells:         sr.Cells,
		Ops:           sr.Ops,
		Status:        sr.Status,
		Error:         sr.Error,
	}
	if err := s.history.Record(ctx, run); err != nil {
		l.Warn("Failed to record ingestion history", zap.String("sheet", sr.Sheet), zap.Error(err))
	}
}
