package delivery

import (
	"time"

	"insightsgo/internal/delivery/middleware"
	"insightsgo/pkg/logger"
	"insightsgo/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HTTPRouter struct {
	handlers       *HTTPHandlers
	logger         *logger.Logger
	metrics        *metrics.Metrics
	requestTimeout time.Duration
	ratePerSecond  int
}

func NewHTTPRouter(handlers *HTTPHandlers, logger *logger.Logger, metrics *metrics.Metrics, requestTimeout time.Duration, ratePerSecond int) *HTTPRouter {
	return &HTTPRouter{
		handlers:       handlers,
		logger:         logger,
		metrics:        metrics,
		requestTimeout: requestTimeout,
		ratePerSecond:  ratePerSecond,
	}
}

func (r *HTTPRouter) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.Recovery(r.logger))
	router.Use(middleware.Metrics(r.metrics))
	router.Use(middleware.RateLimit(r.ratePerSecond))
	router.Use(middleware.Timeout(r.requestTimeout))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Content-Type", "X-Request-ID"}
	config.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}

	router.Use(cors.New(config))

	// Health endpoint
	router.GET("/health", r.handlers.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/", r.handlers.GetAPIInfo)
		v1.GET("", r.handlers.GetAPIInfo)

		// Dashboard endpoints
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/summary", r.handlers.GetSummary)
			dashboard.GET("/daily", r.handlers.GetDaily)
			dashboard.GET("/channels", r.handlers.GetChannels)
		}

		// Campaign table endpoint
		v1.GET("/campaigns", r.handlers.GetCampaigns)

		// Refresh endpoint
		refresh := v1.Group("/refresh")
		{
			refresh.POST("/run", r.handlers.RefreshRun)
		}

		// Export endpoints
		export := v1.Group("/export")
		{
			export.GET("/csv", r.handlers.ExportCSV)
			export.GET("/pdf", r.handlers.ExportPDF)
		}
	}

	// Prometheus metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler())

	return router
}
