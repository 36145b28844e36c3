package infrastructure

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"insightsgo/internal/domain"
	"insightsgo/pkg/logger"
)

// Per-field generation ranges for the daily series. Half-open: [min, min+span).
const (
	revenueMin, revenueSpan         = 1000, 5000
	usersMin, usersSpan             = 200, 1000
	conversionsMin, conversionsSpan = 50, 200
	impressionsMin, impressionsSpan = 5000, 10000
	clicksMin, clicksSpan           = 100, 500
	ctrMin, ctrSpan                 = 1.0, 5.0
	cpcMin, cpcSpan                 = 0.5, 2.0
)

// Campaign generation ranges.
const (
	campaignIDOffset = 1000

	spendMin, spendSpan              = 100.0, 1000.0
	campImpressionsMin, campImprSpan = 10000, 100000
	campClicksMin, campClicksSpan    = 500, 5000
	campConversionsMin, campConvSpan = 10, 100
)

// implements domain.SnapshotGenerator
type SyntheticGenerator struct {
	windowDays    int
	campaignCount int
	logger        *logger.Logger
	now           func() time.Time
}

// creates a new synthetic data generator
func NewSyntheticGenerator(windowDays, campaignCount int, logger *logger.Logger) *SyntheticGenerator {
	return &SyntheticGenerator{
		windowDays:    windowDays,
		campaignCount: campaignCount,
		logger:        logger,
		now:           time.Now,
	}
}

// Generate builds a fully independent snapshot anchored at the current wall
// clock. Values are randomized within fixed ranges; only shape and ranges are
// stable across calls.
func (g *SyntheticGenerator) Generate(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := g.now().UTC()
	daily := g.generateDaily(now)

	snapshot := &domain.Snapshot{
		Metrics:     aggregate(daily),
		Daily:       daily,
		Campaigns:   g.generateCampaigns(now),
		Channels:    channelShares(),
		GeneratedAt: now,
	}

	g.logger.WithContext(ctx).WithFields(map[string]any{
		"daily_entries": len(snapshot.Daily),
		"campaigns":     len(snapshot.Campaigns),
		"channels":      len(snapshot.Channels),
	}).Debug("Generated snapshot")

	return snapshot, nil
}

// generateDaily produces one entry per calendar day, oldest first, ending at
// the anchor day.
func (g *SyntheticGenerator) generateDaily(now time.Time) []domain.DailyMetric {
	daily := make([]domain.DailyMetric, g.windowDays)
	for i := range daily {
		date := now.AddDate(0, 0, -(g.windowDays - 1 - i))
		daily[i] = domain.DailyMetric{
			Date:        date.Format("2006-01-02"),
			Revenue:     revenueMin + rand.Intn(revenueSpan),
			Users:       usersMin + rand.Intn(usersSpan),
			Conversions: conversionsMin + rand.Intn(conversionsSpan),
			Impressions: impressionsMin + rand.Intn(impressionsSpan),
			Clicks:      clicksMin + rand.Intn(clicksSpan),
			CTR:         ctrMin + rand.Float64()*ctrSpan,
			CPC:         cpcMin + rand.Float64()*cpcSpan,
		}
	}
	return daily
}

// generateCampaigns produces campaign rows with independently randomized
// dates anywhere in the trailing window. IDs are counter-based and unique
// only within one snapshot.
func (g *SyntheticGenerator) generateCampaigns(now time.Time) []domain.Campaign {
	campaigns := make([]domain.Campaign, g.campaignCount)
	windowSeconds := int64(g.windowDays) * 24 * 60 * 60
	for i := range campaigns {
		date := now.Add(-time.Duration(rand.Int63n(windowSeconds)) * time.Second)
		campaigns[i] = domain.Campaign{
			ID:          fmt.Sprintf("CAM-%d", campaignIDOffset+i),
			Campaign:    fmt.Sprintf("Campaign %c%d", 'A'+rand.Intn(26), rand.Intn(100)),
			Date:        date.Format("2006-01-02"),
			Spend:       round2(spendMin + rand.Float64()*spendSpan),
			Impressions: campImpressionsMin + rand.Intn(campImprSpan),
			Clicks:      campClicksMin + rand.Intn(campClicksSpan),
			Conversions: campConversionsMin + rand.Intn(campConvSpan),
			CTR:         round2(ctrMin + rand.Float64()*ctrSpan),
			CPC:         round2(cpcMin + rand.Float64()*cpcSpan),
			Status:      domain.CampaignStatuses[rand.Intn(len(domain.CampaignStatuses))],
		}
	}
	return campaigns
}

// channelShares returns the static acquisition split. Not regenerated.
func channelShares() []domain.ChannelShare {
	return []domain.ChannelShare{
		{Name: "Google Ads", Value: 45, Color: "#4285F4"},
		{Name: "Facebook Ads", Value: 30, Color: "#1877F2"},
		{Name: "Instagram Ads", Value: 15, Color: "#E4405F"},
		{Name: "LinkedIn Ads", Value: 10, Color: "#0A66C2"},
	}
}

// aggregate reduces the daily series into summary metrics.
func aggregate(daily []domain.DailyMetric) domain.AggregateMetrics {
	var m domain.AggregateMetrics
	var ctrSum, cpcSum float64
	for _, d := range daily {
		m.Revenue += d.Revenue
		m.Users += d.Users
		m.Conversions += d.Conversions
		m.Impressions += d.Impressions
		ctrSum += d.CTR
		cpcSum += d.CPC
	}

	if n := len(daily); n > 0 {
		m.AvgCTR = ctrSum / float64(n)
		m.AvgCPC = cpcSum / float64(n)
	}

	var firstHalf, secondHalf int
	half := len(daily) / 2
	for i, d := range daily {
		if i < half {
			firstHalf += d.Revenue
		} else {
			secondHalf += d.Revenue
		}
	}
	m.Growth = growthRate(firstHalf, secondHalf)

	return m
}

// growthRate is the percentage change from the leading to the trailing half
// of the window, rounded to two decimals. A zero leading half reports 0
// rather than leaking Inf/NaN into a displayed metric.
func growthRate(firstHalf, secondHalf int) float64 {
	if firstHalf == 0 {
		return 0
	}
	return round2(float64(secondHalf-firstHalf) / float64(firstHalf) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
