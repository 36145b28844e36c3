package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"insightsgo/internal/domain"
	"insightsgo/pkg/logger"
	"insightsgo/pkg/metrics"
)

// ExportService produces campaign CSV and PDF report downloads. Exports
// capture their snapshot reference at call time and never read through the
// live slot mid-flight, so a refresh during a long export cannot change the
// data being written. A single in-flight flag rejects overlapping exports
// and is cleared on every exit path.
type ExportService struct {
	snapshots domain.SnapshotRepository
	csvWriter domain.CampaignCSVWriter
	renderer  domain.ReportRenderer
	logger    *logger.Logger
	metrics   *metrics.Metrics

	inFlight atomic.Bool
}

// NewExportService creates a new export service
func NewExportService(
	snapshots domain.SnapshotRepository,
	csvWriter domain.CampaignCSVWriter,
	renderer domain.ReportRenderer,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *ExportService {
	return &ExportService{
		snapshots: snapshots,
		csvWriter: csvWriter,
		renderer:  renderer,
		logger:    logger,
		metrics:   metrics,
	}
}

// ExportCSV serializes the full, unfiltered campaign set of the current
// snapshot. Returns domain.ErrNoData before the first snapshot and
// domain.ErrExportInFlight while another export is running.
func (s *ExportService) ExportCSV(ctx context.Context) ([]byte, error) {
	release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	start := time.Now()
	log := s.logger.WithContext(ctx)

	snapshot, err := s.snapshots.Current(ctx)
	if err != nil {
		s.metrics.RecordExport("csv", "no_data", time.Since(start))
		log.Warn("CSV export requested before first snapshot")
		return nil, err
	}

	data := s.csvWriter.WriteCSV(snapshot.Campaigns)

	s.metrics.RecordExport("csv", "success", time.Since(start))
	s.metrics.RecordExportBytes("csv", len(data))

	log.WithFields(map[string]any{
		"rows":  len(snapshot.Campaigns),
		"bytes": len(data),
	}).Info("CSV export completed")

	return data, nil
}

// ExportReport renders the paginated PDF report from the current snapshot.
// The theme is an explicit parameter threaded through to the renderer.
func (s *ExportService) ExportReport(ctx context.Context, theme domain.Theme) ([]byte, error) {
	release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	start := time.Now()
	log := s.logger.WithContext(ctx)

	snapshot, err := s.snapshots.Current(ctx)
	if err != nil {
		s.metrics.RecordExport("pdf", "no_data", time.Since(start))
		log.Warn("PDF export requested before first snapshot")
		return nil, err
	}

	data, err := s.renderer.Render(ctx, snapshot, theme, time.Now())
	if err != nil {
		s.metrics.RecordExport("pdf", "failed", time.Since(start))
		log.WithError(err).Error("PDF export failed")
		return nil, fmt.Errorf("failed to export report: %w", err)
	}

	s.metrics.RecordExport("pdf", "success", time.Since(start))
	s.metrics.RecordExportBytes("pdf", len(data))

	log.WithFields(map[string]any{
		"bytes": len(data),
		"theme": theme,
	}).Info("PDF export completed")

	return data, nil
}

// acquire claims the in-flight flag. The returned release func must run on
// success and failure paths alike.
func (s *ExportService) acquire() (func(), error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, domain.ErrExportInFlight
	}
	s.metrics.IncExportsInFlight()
	return func() {
		s.inFlight.Store(false)
		s.metrics.DecExportsInFlight()
	}, nil
}
