package domain

import (
	"errors"
	"time"
)

type CampaignStatus string

const (
	StatusActive    CampaignStatus = "Active"
	StatusPaused    CampaignStatus = "Paused"
	StatusCompleted CampaignStatus = "Completed"
)

// CampaignStatuses lists every status a generated campaign can carry.
var CampaignStatuses = []CampaignStatus{StatusActive, StatusPaused, StatusCompleted}

var (
	// ErrNoData is returned when an operation needs a snapshot before the
	// first one has been published.
	ErrNoData = errors.New("no snapshot available")

	// ErrExportInFlight is returned when an export is requested while
	// another one is still running.
	ErrExportInFlight = errors.New("export already in progress")
)

// DailyMetric is one day of the trailing performance window.
type DailyMetric struct {
	Date        string  `json:"date"`
	Revenue     int     `json:"revenue"`
	Users       int     `json:"users"`
	Conversions int     `json:"conversions"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	CTR         float64 `json:"ctr"`
	CPC         float64 `json:"cpc"`
}

// Campaign is one row of the campaign performance table. Spend, CTR and CPC
// are rounded to two decimal places at generation time.
type Campaign struct {
	ID          string         `json:"id"`
	Campaign    string         `json:"campaign"`
	Date        string         `json:"date"`
	Spend       float64        `json:"spend"`
	Impressions int            `json:"impressions"`
	Clicks      int            `json:"clicks"`
	Conversions int            `json:"conversions"`
	CTR         float64        `json:"ctr"`
	CPC         float64        `json:"cpc"`
	Status      CampaignStatus `json:"status"`
}

// ChannelShare is one slice of the acquisition channel split.
type ChannelShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// AggregateMetrics are computed by reducing over the daily series.
type AggregateMetrics struct {
	Revenue     int     `json:"revenue"`
	Users       int     `json:"users"`
	Conversions int     `json:"conversions"`
	Impressions int     `json:"impressions"`
	Growth      float64 `json:"growth"`
	AvgCTR      float64 `json:"avg_ctr"`
	AvgCPC      float64 `json:"avg_cpc"`
}

// Snapshot is one complete generated dataset. It is immutable once built and
// is replaced wholesale on every refresh, never patched field by field.
type Snapshot struct {
	Metrics     AggregateMetrics `json:"metrics"`
	Daily       []DailyMetric    `json:"daily_metrics"`
	Campaigns   []Campaign       `json:"campaigns"`
	Channels    []ChannelShare   `json:"channels"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// Theme selects the palette used by rendering consumers. It is passed
// explicitly rather than read from process-wide state.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsDark() bool {
	return t != ThemeLight
}

// ParseTheme maps a request value onto a theme, falling back to the default
// for anything unrecognised.
func ParseTheme(s string, fallback Theme) Theme {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s)
	}
	return fallback
}
