package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"insightsgo/internal/domain"
	"insightsgo/internal/infrastructure"
	"insightsgo/internal/usecase"
	"insightsgo/pkg/logger"
	"insightsgo/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Collectors register in the default Prometheus registry; create them once
// per test binary.
var testMetrics = metrics.New()

func newTestRouter(t *testing.T, publish bool) *gin.Engine {
	t.Helper()

	log := logger.New("error", "")
	snapshots := infrastructure.NewSnapshotRepository(log)
	generator := infrastructure.NewSyntheticGenerator(30, 50, log)

	dashboard := usecase.NewDashboardService(snapshots, log, testMetrics)
	refresher := usecase.NewRefreshService(generator, snapshots, log, testMetrics, time.Hour, time.Hour)
	exporter := usecase.NewExportService(snapshots, infrastructure.NewCSVExporter(), infrastructure.NewPDFExporter(log), log, testMetrics)

	if publish {
		if err := refresher.RefreshNow(context.Background()); err != nil {
			t.Fatalf("publish snapshot: %v", err)
		}
	}

	handlers := NewHTTPHandlers(dashboard, refresher, exporter, domain.ThemeDark, 10, log, testMetrics)
	router := NewHTTPRouter(handlers, log, testMetrics, 30*time.Second, 1000)
	return router.SetupRoutes()
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, false)

	w := doRequest(router, http.MethodGet, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("health returned %d", w.Code)
	}
}

func TestDashboardBeforeFirstSnapshot(t *testing.T) {
	router := newTestRouter(t, false)

	for _, path := range []string{
		"/api/v1/dashboard/summary",
		"/api/v1/dashboard/daily",
		"/api/v1/dashboard/channels",
		"/api/v1/campaigns",
		"/api/v1/export/csv",
		"/api/v1/export/pdf",
	} {
		w := doRequest(router, http.MethodGet, path)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s before first snapshot returned %d, want 503", path, w.Code)
		}
	}
}

func TestCampaignTablePagination(t *testing.T) {
	router := newTestRouter(t, true)

	w := doRequest(router, http.MethodGet, "/api/v1/campaigns?page=2")
	if w.Code != http.StatusOK {
		t.Fatalf("campaigns returned %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Data       []domain.Campaign `json:"data"`
		Page       int               `json:"page"`
		Total      int               `json:"total"`
		TotalPages int               `json:"total_pages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if body.Total != 50 || body.TotalPages != 5 {
		t.Errorf("expected 50 rows over 5 pages, got %d over %d", body.Total, body.TotalPages)
	}
	if len(body.Data) != 10 {
		t.Errorf("expected 10 rows on page 2, got %d", len(body.Data))
	}
	if body.Page != 2 {
		t.Errorf("page echoed as %d", body.Page)
	}
}

func TestCampaignTableBadPage(t *testing.T) {
	router := newTestRouter(t, true)

	w := doRequest(router, http.MethodGet, "/api/v1/campaigns?page=abc")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-integer page, got %d", w.Code)
	}
}

func TestCampaignTableMalformedDatesDegrade(t *testing.T) {
	router := newTestRouter(t, true)

	// Malformed bounds impose no constraint rather than failing the request.
	w := doRequest(router, http.MethodGet, "/api/v1/campaigns?start_date=garbage&end_date=also-garbage")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for malformed date bounds, got %d", w.Code)
	}

	var body struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Total != 50 {
		t.Errorf("malformed bounds filtered rows: got %d, want 50", body.Total)
	}
}

func TestExportCSVDownload(t *testing.T) {
	router := newTestRouter(t, true)

	w := doRequest(router, http.MethodGet, "/api/v1/export/csv")
	if w.Code != http.StatusOK {
		t.Fatalf("export csv returned %d", w.Code)
	}

	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "admybrand_campaign_data.csv") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "ID,Campaign,Date,Spend,Impressions,Clicks,Conversions,CTR,CPC,Status\n") {
		t.Error("csv body missing the fixed header row")
	}
	if lines := strings.Count(w.Body.String(), "\n"); lines != 50 {
		t.Errorf("expected 50 newlines for header+50 rows, got %d", lines)
	}
}

func TestExportPDFDownload(t *testing.T) {
	router := newTestRouter(t, true)

	w := doRequest(router, http.MethodGet, "/api/v1/export/pdf?theme=light")
	if w.Code != http.StatusOK {
		t.Fatalf("export pdf returned %d", w.Code)
	}

	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "admybrand_analytics_report.pdf") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Error("pdf body does not start with the PDF magic")
	}
}

func TestManualRefresh(t *testing.T) {
	router := newTestRouter(t, false)

	w := doRequest(router, http.MethodPost, "/api/v1/refresh/run")
	if w.Code != http.StatusOK {
		t.Fatalf("refresh/run returned %d: %s", w.Code, w.Body.String())
	}

	// Data endpoints come alive after the manual refresh.
	w = doRequest(router, http.MethodGet, "/api/v1/dashboard/summary")
	if w.Code != http.StatusOK {
		t.Fatalf("summary after refresh returned %d", w.Code)
	}
}
