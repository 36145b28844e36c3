package delivery

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"insightsgo/internal/domain"
	"insightsgo/internal/infrastructure"
	"insightsgo/internal/usecase"
	"insightsgo/pkg/logger"
	"insightsgo/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// handles HTTP requests
type HTTPHandlers struct {
	dashboard    *usecase.DashboardService
	refresher    *usecase.RefreshService
	exporter     *usecase.ExportService
	defaultTheme domain.Theme
	pageSize     int
	logger       *logger.Logger
	metrics      *metrics.Metrics
}

// creates new HTTP handlers
func NewHTTPHandlers(
	dashboard *usecase.DashboardService,
	refresher *usecase.RefreshService,
	exporter *usecase.ExportService,
	defaultTheme domain.Theme,
	pageSize int,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *HTTPHandlers {
	return &HTTPHandlers{
		dashboard:    dashboard,
		refresher:    refresher,
		exporter:     exporter,
		defaultTheme: defaultTheme,
		pageSize:     pageSize,
		logger:       logger,
		metrics:      metrics,
	}
}

// GetSummary returns the aggregate metrics of the current snapshot
func (h *HTTPHandlers) GetSummary(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.dashboard.Summary(ctx)
	if err != nil {
		h.renderReadError(c, err, "Failed to retrieve summary")
		return
	}

	generatedAt, _ := h.dashboard.GeneratedAt(ctx)
	c.JSON(http.StatusOK, gin.H{
		"metrics":      summary,
		"generated_at": generatedAt,
		"request_id":   c.GetString("request_id"),
	})
}

// GetDaily returns the trailing daily series
func (h *HTTPHandlers) GetDaily(c *gin.Context) {
	daily, err := h.dashboard.Daily(c.Request.Context())
	if err != nil {
		h.renderReadError(c, err, "Failed to retrieve daily series")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       daily,
		"count":      len(daily),
		"request_id": c.GetString("request_id"),
	})
}

// GetChannels returns the channel share split
func (h *HTTPHandlers) GetChannels(c *gin.Context) {
	channels, err := h.dashboard.Channels(c.Request.Context())
	if err != nil {
		h.renderReadError(c, err, "Failed to retrieve channels")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       channels,
		"request_id": c.GetString("request_id"),
	})
}

// GetCampaigns runs a table query over the campaign set. Malformed date
// bounds degrade to "no constraint" inside the engine rather than failing
// the request; only the page number is validated here.
func (h *HTTPHandlers) GetCampaigns(c *gin.Context) {
	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		parsed, err := strconv.Atoi(pageStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Invalid page number",
				"message":    "page must be an integer",
				"request_id": c.GetString("request_id"),
			})
			return
		}
		page = parsed
	}

	direction := domain.SortAsc
	if c.Query("dir") == string(domain.SortDesc) {
		direction = domain.SortDesc
	}

	query := domain.TableQuery{
		Search:        c.Query("q"),
		StartDate:     c.Query("start_date"),
		EndDate:       c.Query("end_date"),
		SortColumn:    c.Query("sort"),
		SortDirection: direction,
		Page:          page,
		PageSize:      h.pageSize,
	}

	result, err := h.dashboard.Campaigns(c.Request.Context(), query)
	if err != nil {
		h.renderReadError(c, err, "Failed to retrieve campaigns")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":        result.Rows,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total":       result.TotalRows,
		"total_pages": result.TotalPages,
		"request_id":  c.GetString("request_id"),
	})
}

// RefreshRun regenerates the snapshot immediately
func (h *HTTPHandlers) RefreshRun(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.refresher.RefreshNow(ctx); err != nil {
		h.logger.WithContext(ctx).WithError(err).Error("Manual refresh failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Refresh failed",
			"message":    err.Error(),
			"request_id": c.GetString("request_id"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Snapshot refreshed successfully",
		"request_id": c.GetString("request_id"),
	})
}

// ExportCSV downloads the full campaign set as CSV
func (h *HTTPHandlers) ExportCSV(c *gin.Context) {
	data, err := h.exporter.ExportCSV(c.Request.Context())
	if err != nil {
		h.renderExportError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+infrastructure.CSVFilename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ExportPDF downloads the analytics report as PDF. The theme can be
// overridden per request via ?theme=light|dark.
func (h *HTTPHandlers) ExportPDF(c *gin.Context) {
	theme := domain.ParseTheme(c.Query("theme"), h.defaultTheme)

	data, err := h.exporter.ExportReport(c.Request.Context(), theme)
	if err != nil {
		h.renderExportError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+infrastructure.PDFFilename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// HealthCheck returns the health status of the service
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"service":    "insights-go",
		"version":    "1.0.0",
		"request_id": c.GetString("request_id"),
	})
}

// GetAPIInfo returns API v1 information and available endpoints
func (h *HTTPHandlers) GetAPIInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"api_version": "v1",
		"service":     "ADmyBRAND Insights",
		"version":     "1.0.0",
		"description": "Marketing analytics dashboard API with synthetic campaign data",
		"endpoints": gin.H{
			"dashboard": gin.H{
				"summary":  "/api/v1/dashboard/summary",
				"daily":    "/api/v1/dashboard/daily",
				"channels": "/api/v1/dashboard/channels",
			},
			"campaigns": gin.H{
				"path": "/api/v1/campaigns",
				"parameters": gin.H{
					"q":          "Optional: free-text search over all fields",
					"start_date": "Optional: lower date bound (YYYY-MM-DD)",
					"end_date":   "Optional: upper date bound (YYYY-MM-DD)",
					"sort":       "Optional: column to sort by",
					"dir":        "Optional: asc (default) or desc",
					"page":       "Optional: page number, 10 rows per page",
				},
				"example": "/api/v1/campaigns?q=active&sort=spend&dir=desc&page=2",
			},
			"refresh": gin.H{
				"path":    "/api/v1/refresh/run",
				"methods": []string{"POST"},
			},
			"export": gin.H{
				"csv": "/api/v1/export/csv",
				"pdf": "/api/v1/export/pdf?theme=light|dark",
			},
		},
		"request_id": c.GetString("request_id"),
	})
}

// renderReadError maps snapshot read failures onto responses: no data yet is
// a 503 (the dashboard is still loading), anything else a 500.
func (h *HTTPHandlers) renderReadError(c *gin.Context, err error, message string) {
	if errors.Is(err, domain.ErrNoData) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":      "No data available yet",
			"message":    "The first snapshot has not been generated",
			"request_id": c.GetString("request_id"),
		})
		return
	}

	h.logger.WithContext(c.Request.Context()).WithError(err).Error(message)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":      message,
		"message":    err.Error(),
		"request_id": c.GetString("request_id"),
	})
}

// renderExportError keeps export failures local: busy and not-loaded cases
// are surfaced as client-visible states, renderer failures as 500s.
func (h *HTTPHandlers) renderExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrExportInFlight):
		c.JSON(http.StatusConflict, gin.H{
			"error":      "Export already in progress",
			"request_id": c.GetString("request_id"),
		})
	case errors.Is(err, domain.ErrNoData):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":      "Nothing to export",
			"message":    "The first snapshot has not been generated",
			"request_id": c.GetString("request_id"),
		})
	default:
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Export failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Export failed",
			"message":    err.Error(),
			"request_id": c.GetString("request_id"),
		})
	}
}
