package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"insightsgo/internal/domain"
	"insightsgo/pkg/logger"
	"insightsgo/pkg/metrics"
)

// RefreshService regenerates the snapshot on a fixed interval and publishes
// each one by replacing the repository's snapshot reference wholesale. The
// first snapshot is delayed by the configured initial delay, matching the
// dashboard's one-time loading phase.
type RefreshService struct {
	generator    domain.SnapshotGenerator
	snapshots    domain.SnapshotRepository
	logger       *logger.Logger
	metrics      *metrics.Metrics
	interval     time.Duration
	initialDelay time.Duration

	startOnce sync.Once
	done      chan struct{}
}

// NewRefreshService creates a new refresh service
func NewRefreshService(
	generator domain.SnapshotGenerator,
	snapshots domain.SnapshotRepository,
	logger *logger.Logger,
	metrics *metrics.Metrics,
	interval, initialDelay time.Duration,
) *RefreshService {
	return &RefreshService{
		generator:    generator,
		snapshots:    snapshots,
		logger:       logger,
		metrics:      metrics,
		interval:     interval,
		initialDelay: initialDelay,
		done:         make(chan struct{}),
	}
}

// Start launches the refresh loop. It returns immediately; the loop stops
// when ctx is cancelled. Subsequent calls are no-ops.
func (s *RefreshService) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		go s.run(ctx)
	})
}

// Done is closed once the refresh loop has exited.
func (s *RefreshService) Done() <-chan struct{} {
	return s.done
}

func (s *RefreshService) run(ctx context.Context) {
	defer close(s.done)

	log := s.logger.WithContext(ctx)
	log.WithFields(map[string]any{
		"interval":      s.interval,
		"initial_delay": s.initialDelay,
	}).Info("Starting snapshot refresh loop")

	delay := time.NewTimer(s.initialDelay)
	select {
	case <-ctx.Done():
		delay.Stop()
		return
	case <-delay.C:
	}

	if err := s.refresh(ctx, "initial"); err != nil {
		log.WithError(err).Error("Initial snapshot generation failed")
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Snapshot refresh loop stopped")
			return
		case <-ticker.C:
			if err := s.refresh(ctx, "interval"); err != nil {
				log.WithError(err).Error("Snapshot refresh failed")
			}
		}
	}
}

// RefreshNow regenerates and publishes a snapshot immediately, outside the
// timer cadence.
func (s *RefreshService) RefreshNow(ctx context.Context) error {
	return s.refresh(ctx, "manual")
}

func (s *RefreshService) refresh(ctx context.Context, trigger string) error {
	start := time.Now()

	if previous, err := s.snapshots.Current(ctx); err == nil {
		s.metrics.RecordSnapshotAge(time.Since(previous.GeneratedAt))
	}

	snapshot, err := s.generator.Generate(ctx)
	if err != nil {
		s.metrics.RecordSnapshotRefresh("failed", trigger, time.Since(start))
		return fmt.Errorf("failed to generate snapshot: %w", err)
	}

	if err := s.snapshots.Replace(ctx, snapshot); err != nil {
		s.metrics.RecordSnapshotRefresh("failed", trigger, time.Since(start))
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}

	s.metrics.RecordSnapshotRefresh("success", trigger, time.Since(start))
	return nil
}
