package usecase

import (
	"context"
	"fmt"

	"insightsgo/internal/domain"
	"insightsgo/pkg/logger"
	"insightsgo/pkg/metrics"
)

// DashboardService serves dashboard reads off the current snapshot. Every
// method captures one snapshot reference up front and reads only through it,
// so an interleaved refresh can never produce a mixed view.
type DashboardService struct {
	snapshots domain.SnapshotRepository
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	snapshots domain.SnapshotRepository,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *DashboardService {
	return &DashboardService{
		snapshots: snapshots,
		logger:    logger,
		metrics:   metrics,
	}
}

// Summary returns the aggregate metrics of the current snapshot.
func (s *DashboardService) Summary(ctx context.Context) (*domain.AggregateMetrics, error) {
	snapshot, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	m := snapshot.Metrics
	return &m, nil
}

// Daily returns the trailing daily series of the current snapshot.
func (s *DashboardService) Daily(ctx context.Context) ([]domain.DailyMetric, error) {
	snapshot, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Daily, nil
}

// Channels returns the channel share split of the current snapshot.
func (s *DashboardService) Channels(ctx context.Context) ([]domain.ChannelShare, error) {
	snapshot, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Channels, nil
}

// Campaigns runs the table query pipeline over the current snapshot's
// campaign set.
func (s *DashboardService) Campaigns(ctx context.Context, query domain.TableQuery) (*domain.TablePage, error) {
	log := s.logger.WithContext(ctx)

	snapshot, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaigns: %w", err)
	}

	page := QueryCampaigns(snapshot.Campaigns, query)

	sorted := query.SortColumn != ""
	filtered := query.Search != "" || query.StartDate != "" || query.EndDate != ""
	s.metrics.RecordTableQuery(sorted, filtered, page.TotalRows)

	log.WithFields(map[string]any{
		"search":      query.Search,
		"start_date":  query.StartDate,
		"end_date":    query.EndDate,
		"sort":        query.SortColumn,
		"direction":   query.SortDirection,
		"page":        query.Page,
		"matched":     page.TotalRows,
		"total_pages": page.TotalPages,
	}).Info("Campaign table query")

	return &page, nil
}

// GeneratedAt reports when the current snapshot was produced.
func (s *DashboardService) GeneratedAt(ctx context.Context) (string, error) {
	snapshot, err := s.snapshots.Current(ctx)
	if err != nil {
		return "", err
	}
	return snapshot.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"), nil
}
