package usecase

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"insightsgo/internal/domain"
)

// DefaultPageSize is the fixed table page size.
const DefaultPageSize = 10

const dateLayout = "2006-01-02"

// QueryCampaigns derives one table page from a record set. The pipeline is
// purely functional over its inputs and runs in strict order: free-text
// search, date-range filter, stable column sort, pagination. The input slice
// is never mutated.
func QueryCampaigns(records []domain.Campaign, query domain.TableQuery) domain.TablePage {
	filtered := filterCampaigns(records, query)
	sortCampaigns(filtered, query.SortColumn, query.SortDirection)

	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize

	// No clamping: an out-of-range page yields empty rows and the caller
	// gates navigation off TotalPages.
	rows := []domain.Campaign{}
	start := (query.Page - 1) * pageSize
	if start >= 0 && start < total {
		end := start + pageSize
		if end > total {
			end = total
		}
		rows = filtered[start:end]
	}

	return domain.TablePage{
		Rows:       rows,
		Page:       query.Page,
		PageSize:   pageSize,
		TotalRows:  total,
		TotalPages: totalPages,
	}
}

func filterCampaigns(records []domain.Campaign, query domain.TableQuery) []domain.Campaign {
	term := strings.ToLower(query.Search)

	// Malformed or absent bounds impose no constraint.
	start, hasStart := parseDate(query.StartDate)
	end, hasEnd := parseDate(query.EndDate)

	filtered := make([]domain.Campaign, 0, len(records))
	for _, record := range records {
		if term != "" && !matchesSearch(record, term) {
			continue
		}
		if hasStart || hasEnd {
			date, ok := parseDate(record.Date)
			if !ok {
				continue
			}
			if hasStart && date.Before(start) {
				continue
			}
			if hasEnd && date.After(end) {
				continue
			}
		}
		filtered = append(filtered, record)
	}
	return filtered
}

// matchesSearch reports whether any field's text form contains the
// lower-cased term as a substring.
func matchesSearch(record domain.Campaign, term string) bool {
	for _, field := range fieldStrings(record) {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// fieldStrings renders every field the way the table displays it.
func fieldStrings(c domain.Campaign) []string {
	return []string{
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
	}
}

// sortCampaigns stably sorts in place by the selected column. An empty or
// unknown column leaves the filtered order untouched, which keeps the
// result deterministic.
func sortCampaigns(records []domain.Campaign, column string, direction domain.SortDirection) {
	desc := direction == domain.SortDesc

	switch {
	case domain.StringColumns[column]:
		sort.SliceStable(records, func(i, j int) bool {
			cmp := strings.Compare(stringColumn(records[i], column), stringColumn(records[j], column))
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	case domain.NumericColumns[column]:
		sort.SliceStable(records, func(i, j int) bool {
			a, b := numericColumn(records[i], column), numericColumn(records[j], column)
			if desc {
				return a > b
			}
			return a < b
		})
	}
}

func stringColumn(c domain.Campaign, column string) string {
	switch column {
	case "id":
		return c.ID
	case "campaign":
		return c.Campaign
	case "date":
		return c.Date
	case "status":
		return string(c.Status)
	}
	return ""
}

func numericColumn(c domain.Campaign, column string) float64 {
	switch column {
	case "spend":
		return c.Spend
	case "impressions":
		return float64(c.Impressions)
	case "clicks":
		return float64(c.Clicks)
	case "conversions":
		return float64(c.Conversions)
	case "ctr":
		return c.CTR
	case "cpc":
		return c.CPC
	}
	return 0
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
