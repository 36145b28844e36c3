package infrastructure

import (
	"strconv"
	"strings"

	"insightsgo/internal/domain"
)

// CSVFilename is the fixed download name for campaign exports.
const CSVFilename = "admybrand_campaign_data.csv"

// csvHeader is the fixed column order, independent of any table view state.
const csvHeader = "ID,Campaign,Date,Spend,Impressions,Clicks,Conversions,CTR,CPC,Status"

// implements domain.CampaignCSVWriter. Rows are comma-joined with no
// quoting or escaping and no trailing newline after the final row; this is
// the exact upstream wire format. Generated campaign names cannot contain
// commas, so the lack of escaping is safe for this dataset.
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// WriteCSV serializes the full campaign set in dataset order. Sort and
// filter state are deliberately not applied.
func (e *CSVExporter) WriteCSV(campaigns []domain.Campaign) []byte {
	var b strings.Builder
	b.WriteString(csvHeader)

	for _, c := range campaigns {
		b.WriteByte('\n')
		b.WriteString(strings.Join([]string{
			c.ID,
			c.Campaign,
			c.Date,
			strconv.FormatFloat(c.Spend, 'f', 2, 64),
			strconv.Itoa(c.Impressions),
			strconv.Itoa(c.Clicks),
			strconv.Itoa(c.Conversions),
			strconv.FormatFloat(c.CTR, 'f', 2, 64),
			strconv.FormatFloat(c.CPC, 'f', 2, 64),
			string(c.Status),
		}, ","))
	}

	return []byte(b.String())
}
