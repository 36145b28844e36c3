package usecase

import (
	"testing"

	"insightsgo/internal/domain"
)

func tableFixture() []domain.Campaign {
	return []domain.Campaign{
		{ID: "CAM-1000", Campaign: "Campaign A1", Date: "2026-08-01", Spend: 400.00, Impressions: 20000, Clicks: 900, Conversions: 30, CTR: 2.50, CPC: 1.20, Status: domain.StatusActive},
		{ID: "CAM-1001", Campaign: "Campaign B2", Date: "2026-08-05", Spend: 150.00, Impressions: 90000, Clicks: 4100, Conversions: 88, CTR: 4.10, CPC: 0.60, Status: domain.StatusPaused},
		{ID: "CAM-1002", Campaign: "Campaign C3", Date: "2026-08-05", Spend: 400.00, Impressions: 45000, Clicks: 2000, Conversions: 55, CTR: 1.90, CPC: 2.10, Status: domain.StatusCompleted},
		{ID: "CAM-1003", Campaign: "Campaign D4", Date: "2026-08-12", Spend: 980.50, Impressions: 12000, Clicks: 600, Conversions: 12, CTR: 5.20, CPC: 0.90, Status: domain.StatusActive},
		{ID: "CAM-1004", Campaign: "Campaign E5", Date: "2026-08-20", Spend: 720.25, Impressions: 67000, Clicks: 3300, Conversions: 70, CTR: 3.30, CPC: 1.80, Status: domain.StatusPaused},
	}
}

// widerFixture repeats the base rows with fresh ids so pagination spans
// multiple pages at the fixed page size.
func widerFixture() []domain.Campaign {
	base := tableFixture()
	var records []domain.Campaign
	for i := 0; i < 5; i++ {
		for _, c := range base {
			c.ID = c.ID + "-" + string(rune('a'+i))
			records = append(records, c)
		}
	}
	return records // 25 rows
}

func TestQueryIdempotent(t *testing.T) {
	records := widerFixture()
	query := domain.TableQuery{
		Search:        "campaign",
		SortColumn:    "spend",
		SortDirection: domain.SortDesc,
		Page:          2,
	}

	first := QueryCampaigns(records, query)
	second := QueryCampaigns(records, query)

	if first.TotalRows != second.TotalRows || first.TotalPages != second.TotalPages {
		t.Fatalf("metadata differs across identical queries: %+v vs %+v", first, second)
	}
	if len(first.Rows) != len(second.Rows) {
		t.Fatalf("row counts differ: %d vs %d", len(first.Rows), len(second.Rows))
	}
	for i := range first.Rows {
		if first.Rows[i] != second.Rows[i] {
			t.Fatalf("row %d differs across identical queries", i)
		}
	}
}

func TestQueryDoesNotMutateInput(t *testing.T) {
	records := tableFixture()
	original := make([]domain.Campaign, len(records))
	copy(original, records)

	QueryCampaigns(records, domain.TableQuery{SortColumn: "spend", SortDirection: domain.SortDesc, Page: 1})

	for i := range records {
		if records[i] != original[i] {
			t.Fatalf("input slice mutated at index %d", i)
		}
	}
}

func TestSortStableAndReversible(t *testing.T) {
	records := tableFixture()

	asc := QueryCampaigns(records, domain.TableQuery{SortColumn: "clicks", SortDirection: domain.SortAsc, Page: 1})
	desc := QueryCampaigns(records, domain.TableQuery{SortColumn: "clicks", SortDirection: domain.SortDesc, Page: 1})

	// All click values are distinct, so descending must be the exact
	// reverse of ascending.
	n := len(asc.Rows)
	if n != len(desc.Rows) {
		t.Fatalf("row counts differ: %d vs %d", n, len(desc.Rows))
	}
	for i := 0; i < n; i++ {
		if asc.Rows[i] != desc.Rows[n-1-i] {
			t.Fatalf("desc is not the reverse of asc at index %d", i)
		}
	}
}

func TestSortStabilityOnEqualKeys(t *testing.T) {
	records := tableFixture()

	// CAM-1000 and CAM-1002 share spend 400.00; a stable sort keeps their
	// input order.
	result := QueryCampaigns(records, domain.TableQuery{SortColumn: "spend", SortDirection: domain.SortAsc, Page: 1})

	first, second := -1, -1
	for i, row := range result.Rows {
		switch row.ID {
		case "CAM-1000":
			first = i
		case "CAM-1002":
			second = i
		}
	}
	if first == -1 || second == -1 {
		t.Fatal("expected both equal-key rows in the result")
	}
	if first > second {
		t.Fatal("stable sort reordered equal-key rows")
	}
}

func TestSortStringColumn(t *testing.T) {
	records := tableFixture()
	result := QueryCampaigns(records, domain.TableQuery{SortColumn: "status", SortDirection: domain.SortAsc, Page: 1})

	prev := ""
	for _, row := range result.Rows {
		if prev != "" && string(row.Status) < prev {
			t.Fatalf("status column not sorted: %s after %s", row.Status, prev)
		}
		prev = string(row.Status)
	}
}

func TestNoSortColumnKeepsFilteredOrder(t *testing.T) {
	records := tableFixture()
	result := QueryCampaigns(records, domain.TableQuery{Page: 1})

	for i, row := range result.Rows {
		if row.ID != records[i].ID {
			t.Fatalf("order changed without a sort column at index %d", i)
		}
	}
}

func TestPaginationInvariant(t *testing.T) {
	records := widerFixture() // 25 rows

	first := QueryCampaigns(records, domain.TableQuery{SortColumn: "id", SortDirection: domain.SortAsc, Page: 1})
	if first.TotalRows != 25 {
		t.Fatalf("expected 25 matched rows, got %d", first.TotalRows)
	}
	if first.TotalPages != 3 {
		t.Fatalf("totalPages = %d, want ceil(25/10) = 3", first.TotalPages)
	}

	// Concatenating all pages reconstructs the full sorted set exactly.
	seen := make(map[string]bool)
	var all []domain.Campaign
	for page := 1; page <= first.TotalPages; page++ {
		result := QueryCampaigns(records, domain.TableQuery{SortColumn: "id", SortDirection: domain.SortAsc, Page: page})
		for _, row := range result.Rows {
			if seen[row.ID] {
				t.Fatalf("row %s appears on more than one page", row.ID)
			}
			seen[row.ID] = true
			all = append(all, row)
		}
	}
	if len(all) != 25 {
		t.Fatalf("concatenated pages have %d rows, want 25", len(all))
	}
}

func TestPaginationPageSizes(t *testing.T) {
	records := widerFixture()

	for page, want := range map[int]int{1: 10, 2: 10, 3: 5} {
		result := QueryCampaigns(records, domain.TableQuery{Page: page})
		if len(result.Rows) != want {
			t.Errorf("page %d: %d rows, want %d", page, len(result.Rows), want)
		}
	}
}

func TestOutOfRangePageIsEmptyNotClamped(t *testing.T) {
	records := tableFixture()

	for _, page := range []int{0, -1, 2, 99} {
		result := QueryCampaigns(records, domain.TableQuery{Page: page})
		if len(result.Rows) != 0 {
			t.Errorf("page %d: expected empty rows, got %d", page, len(result.Rows))
		}
		if result.TotalPages != 1 || result.TotalRows != 5 {
			t.Errorf("page %d: metadata must stay truthful, got %+v", page, result)
		}
	}
}

func TestSearchEmptyTermMatchesAll(t *testing.T) {
	records := tableFixture()
	result := QueryCampaigns(records, domain.TableQuery{Search: "", Page: 1})
	if result.TotalRows != len(records) {
		t.Fatalf("empty search matched %d rows, want %d", result.TotalRows, len(records))
	}
}

func TestSearchNoMatchIsEmpty(t *testing.T) {
	records := tableFixture()
	result := QueryCampaigns(records, domain.TableQuery{Search: "definitely-not-present", Page: 1})
	if result.TotalRows != 0 {
		t.Fatalf("expected no matches, got %d", result.TotalRows)
	}
}

func TestSearchAnyFieldCaseInsensitive(t *testing.T) {
	records := tableFixture()

	cases := map[string]int{
		"PAUSED":     2, // status field, case folded
		"cam-1003":   1, // id field
		"980.50":     1, // spend rendered to 2 decimals
		"2026-08-05": 2, // date field
	}
	for term, want := range cases {
		result := QueryCampaigns(records, domain.TableQuery{Search: term, Page: 1})
		if result.TotalRows != want {
			t.Errorf("search %q matched %d rows, want %d", term, result.TotalRows, want)
		}
	}
}

func TestDateRangeExactDay(t *testing.T) {
	records := tableFixture()
	result := QueryCampaigns(records, domain.TableQuery{
		StartDate: "2026-08-05",
		EndDate:   "2026-08-05",
		Page:      1,
	})

	if result.TotalRows != 2 {
		t.Fatalf("expected 2 rows dated 2026-08-05, got %d", result.TotalRows)
	}
	for _, row := range result.Rows {
		if row.Date != "2026-08-05" {
			t.Fatalf("row %s has date %s outside the exact-day range", row.ID, row.Date)
		}
	}
}

func TestDateRangeBounds(t *testing.T) {
	records := tableFixture()

	lower := QueryCampaigns(records, domain.TableQuery{StartDate: "2026-08-10", Page: 1})
	if lower.TotalRows != 2 {
		t.Errorf("start-only bound matched %d rows, want 2", lower.TotalRows)
	}

	upper := QueryCampaigns(records, domain.TableQuery{EndDate: "2026-08-05", Page: 1})
	if upper.TotalRows != 3 {
		t.Errorf("end-only bound matched %d rows, want 3", upper.TotalRows)
	}
}

func TestMalformedDateBoundsImposeNoConstraint(t *testing.T) {
	records := tableFixture()

	for _, bad := range []string{"not-a-date", "2026-13-45", "08/05/2026"} {
		result := QueryCampaigns(records, domain.TableQuery{StartDate: bad, EndDate: bad, Page: 1})
		if result.TotalRows != len(records) {
			t.Errorf("malformed bound %q filtered rows: got %d, want %d", bad, result.TotalRows, len(records))
		}
	}
}

func TestUnparseableRecordDateExcludedUnderBounds(t *testing.T) {
	records := tableFixture()
	records = append(records, domain.Campaign{ID: "CAM-BAD", Date: "garbage"})

	unbounded := QueryCampaigns(records, domain.TableQuery{Page: 1})
	if unbounded.TotalRows != 6 {
		t.Fatalf("without bounds all rows pass, got %d", unbounded.TotalRows)
	}

	bounded := QueryCampaigns(records, domain.TableQuery{StartDate: "2026-08-01", Page: 1})
	for _, row := range bounded.Rows {
		if row.ID == "CAM-BAD" {
			t.Fatal("record with unparseable date passed a bounded filter")
		}
	}
}

func TestFilterOrderAffectsPageCount(t *testing.T) {
	records := widerFixture()

	// Filtering runs before pagination, so the page count reflects the
	// filtered set, not the input size.
	result := QueryCampaigns(records, domain.TableQuery{Search: "paused", Page: 1})
	if result.TotalRows != 10 {
		t.Fatalf("expected 10 paused rows, got %d", result.TotalRows)
	}
	if result.TotalPages != 1 {
		t.Fatalf("totalPages = %d, want 1 for 10 filtered rows", result.TotalPages)
	}
}
