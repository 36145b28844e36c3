package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"insightsgo/internal/domain"
	"insightsgo/pkg/logger"
)

// PDFFilename is the fixed download name for report exports.
const PDFFilename = "admybrand_analytics_report.pdf"

// reportTableRows caps how many campaigns the report table includes; the
// slice is taken from the head of the dataset, unfiltered and unsorted.
const reportTableRows = 15

// bottomMargin is the vertical budget reserved at the bottom of each page;
// the page-break threshold is re-evaluated before every table row.
const bottomMargin = 40.0

type palette struct {
	accentR, accentG, accentB int
	inkR, inkG, inkB          int
	boxR, boxG, boxB          int
}

func themePalette(theme domain.Theme) palette {
	if theme.IsDark() {
		return palette{
			accentR: 30, accentG: 58, accentB: 138,
			inkR: 17, inkG: 24, inkB: 39,
			boxR: 226, boxG: 232, boxB: 240,
		}
	}
	return palette{
		accentR: 59, accentG: 130, accentB: 246,
		inkR: 30, inkG: 58, inkB: 138,
		boxR: 240, boxG: 249, boxB: 255,
	}
}

// implements domain.ReportRenderer on top of fpdf
type PDFExporter struct {
	logger *logger.Logger
}

func NewPDFExporter(logger *logger.Logger) *PDFExporter {
	return &PDFExporter{logger: logger}
}

// Render produces the fixed-layout A4 report: header, company box, four
// aggregate metrics in a two-column grid, and the first 15 campaign rows,
// overflowing onto extra pages as needed.
func (e *PDFExporter) Render(ctx context.Context, snapshot *domain.Snapshot, theme domain.Theme, generatedAt time.Time) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pal := themePalette(theme)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pageWidth, pageHeight := pdf.GetPageSize()

	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(0, 0, pageWidth, pageHeight, "F")

	// Header
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(pal.accentR, pal.accentG, pal.accentB)
	centerText(pdf, pageWidth, 28, "ADmyBRAND")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(107, 114, 128)
	centerText(pdf, pageWidth, 45, "Digital Marketing Analytics Report")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(75, 85, 99)
	centerText(pdf, pageWidth, 55, "Report Generated: "+generatedAt.Format("January 2, 2006 15:04"))

	// Company box
	pdf.SetFillColor(pal.boxR, pal.boxG, pal.boxB)
	pdf.Rect(20, 65, pageWidth-40, 25, "F")
	pdf.SetDrawColor(pal.accentR, pal.accentG, pal.accentB)
	pdf.Rect(20, 65, pageWidth-40, 25, "D")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(pal.accentR, pal.accentG, pal.accentB)
	pdf.Text(25, 75, "ADmyBRAND Analytics Platform")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(pal.inkR, pal.inkG, pal.inkB)
	pdf.Text(25, 82, "123 Marketing Street, Digital City, DC 12345")
	pdf.Text(25, 88, "Phone: +1 (555) 123-4567 | Email: insights@admybrand.com")

	// Metric grid, two columns
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(pal.accentR, pal.accentG, pal.accentB)
	pdf.Text(20, 110, "Key Performance Metrics")

	cells := []struct {
		label string
		value string
	}{
		{"Total Revenue", "$" + formatInt(snapshot.Metrics.Revenue)},
		{"Total Users", formatInt(snapshot.Metrics.Users)},
		{"Conversions", formatInt(snapshot.Metrics.Conversions)},
		{"Growth Rate", fmt.Sprintf("%.2f%%", snapshot.Metrics.Growth)},
	}

	const gridY = 125.0
	for i, cell := range cells {
		x := 20 + float64(i%2)*85
		y := gridY + float64(i/2)*15

		pdf.SetFillColor(pal.boxR, pal.boxG, pal.boxB)
		pdf.Rect(x, y-8, 80, 12, "F")
		pdf.SetDrawColor(pal.accentR, pal.accentG, pal.accentB)
		pdf.Rect(x, y-8, 80, 12, "D")

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(pal.inkR, pal.inkG, pal.inkB)
		pdf.Text(x+2, y-2, cell.label)

		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(pal.accentR, pal.accentG, pal.accentB)
		pdf.Text(x+2, y+3, cell.value)
	}

	// Campaign table
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(pal.accentR, pal.accentG, pal.accentB)
	pdf.Text(20, 175, "Campaign Performance Data")

	headers := []string{"Campaign", "Spend", "Impressions", "Clicks", "Conversions"}
	const tableY = 185.0

	pdf.SetFillColor(pal.accentR, pal.accentG, pal.accentB)
	pdf.Rect(20, tableY-8, pageWidth-40, 8, "F")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(255, 255, 255)
	for i, header := range headers {
		pdf.Text(22+float64(i)*35, tableY-2, header)
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(pal.inkR, pal.inkG, pal.inkB)

	rows := snapshot.Campaigns
	if len(rows) > reportTableRows {
		rows = rows[:reportTableRows]
	}

	currentY := tableY + 5
	for i, campaign := range rows {
		if currentY > pageHeight-bottomMargin {
			pdf.AddPage()
			currentY = 20
		}

		if i%2 == 0 {
			pdf.SetFillColor(pal.boxR, pal.boxG, pal.boxB)
			pdf.Rect(20, currentY-6, pageWidth-40, 6, "F")
		}

		name := campaign.Campaign
		if len(name) > 20 {
			name = name[:20]
		}
		pdf.Text(22, currentY, name)
		pdf.Text(57, currentY, "$"+strconv.FormatFloat(campaign.Spend, 'f', 2, 64))
		pdf.Text(92, currentY, formatInt(campaign.Impressions))
		pdf.Text(127, currentY, formatInt(campaign.Clicks))
		pdf.Text(162, currentY, strconv.Itoa(campaign.Conversions))

		currentY += 6
	}

	// Footer on the final page
	pdf.SetFillColor(pal.boxR, pal.boxG, pal.boxB)
	pdf.Rect(0, pageHeight-15, pageWidth, 15, "F")
	pdf.SetDrawColor(pal.accentR, pal.accentG, pal.accentB)
	pdf.Rect(0, pageHeight-15, pageWidth, 15, "D")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(pal.inkR, pal.inkG, pal.inkB)
	centerText(pdf, pageWidth, pageHeight-8, fmt.Sprintf("(c) %d ADmyBRAND Analytics. All rights reserved.", generatedAt.Year()))
	centerText(pdf, pageWidth, pageHeight-4, "Professional Digital Marketing Analytics Platform")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	e.logger.WithContext(ctx).WithFields(map[string]any{
		"bytes": buf.Len(),
		"rows":  len(rows),
		"theme": theme,
	}).Debug("Rendered PDF report")

	return buf.Bytes(), nil
}

func centerText(pdf *fpdf.Fpdf, pageWidth, y float64, s string) {
	pdf.Text((pageWidth-pdf.GetStringWidth(s))/2, y, s)
}

// formatInt renders an integer with thousands separators, matching the
// dashboard's display formatting.
func formatInt(v int) string {
	s := strconv.Itoa(v)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var b []byte
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b = append(b, ',')
		}
		b = append(b, byte(r))
	}
	if neg {
		return "-" + string(b)
	}
	return string(b)
}
