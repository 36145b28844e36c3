package domain

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// TableQuery carries the table view state for one campaign query. Zero values
// impose no constraint: an empty search term matches everything, absent or
// malformed date bounds are ignored, and an empty sort column leaves the
// filtered order untouched.
type TableQuery struct {
	Search        string        `json:"search,omitempty"`
	StartDate     string        `json:"start_date,omitempty"`
	EndDate       string        `json:"end_date,omitempty"`
	SortColumn    string        `json:"sort_column,omitempty"`
	SortDirection SortDirection `json:"sort_direction,omitempty"`
	Page          int           `json:"page"`
	PageSize      int           `json:"page_size"`
}

// TablePage is one page of filtered, sorted campaign rows plus the metadata
// callers need to gate navigation. The engine never clamps Page: requesting a
// page outside [1, TotalPages] yields empty Rows with the true counts.
type TablePage struct {
	Rows       []Campaign `json:"data"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalRows  int        `json:"total"`
	TotalPages int        `json:"total_pages"`
}

// Campaign table columns, keyed the way the JSON payload names them. String
// columns sort lexicographically, the rest numerically.
var (
	StringColumns = map[string]bool{
		"id":       true,
		"campaign": true,
		"date":     true,
		"status":   true,
	}
	NumericColumns = map[string]bool{
		"spend":       true,
		"impressions": true,
		"clicks":      true,
		"conversions": true,
		"ctr":         true,
		"cpc":         true,
	}
)
