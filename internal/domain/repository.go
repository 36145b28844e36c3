package domain

import (
	"context"
	"time"
)

// interface for the single current-snapshot slot
type SnapshotRepository interface {
	Replace(ctx context.Context, snapshot *Snapshot) error
	Current(ctx context.Context) (*Snapshot, error)
}

// interface for producing a fresh dataset
type SnapshotGenerator interface {
	Generate(ctx context.Context) (*Snapshot, error)
}

// interface for campaign CSV serialization
type CampaignCSVWriter interface {
	WriteCSV(campaigns []Campaign) []byte
}

// interface for the paginated report renderer
type ReportRenderer interface {
	Render(ctx context.Context, snapshot *Snapshot, theme Theme, generatedAt time.Time) ([]byte, error)
}
