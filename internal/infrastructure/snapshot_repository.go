package infrastructure

import (
	"context"
	"sync"

	"insightsgo/internal/domain"
	"insightsgo/pkg/logger"
)

// implements domain.SnapshotRepository. A single slot holds the current
// snapshot; Replace swaps the whole pointer, so readers see either the old
// snapshot in full or the new one in full, never a partial mix. Consumers
// must capture the returned pointer once per operation and read through it.
type SnapshotRepository struct {
	current *domain.Snapshot
	mutex   sync.RWMutex
	logger  *logger.Logger
}

// creates a new snapshot repository
func NewSnapshotRepository(logger *logger.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		logger: logger,
	}
}

func (r *SnapshotRepository) Replace(ctx context.Context, snapshot *domain.Snapshot) error {
	r.mutex.Lock()
	r.current = snapshot
	r.mutex.Unlock()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"generated_at": snapshot.GeneratedAt,
		"campaigns":    len(snapshot.Campaigns),
	}).Info("Published new snapshot")
	return nil
}

// Current returns the latest published snapshot, or domain.ErrNoData before
// the first publish.
func (r *SnapshotRepository) Current(ctx context.Context) (*domain.Snapshot, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.current == nil {
		return nil, domain.ErrNoData
	}
	return r.current, nil
}
