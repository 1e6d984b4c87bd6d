package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/delivery/http/middleware"
	"github.com/Harsh-BH/jobtracker/internal/repository"
	"github.com/Harsh-BH/jobtracker/internal/usecase"
)

// RouterDeps holds everything the HTTP layer needs.
type RouterDeps struct {
	ListJobsUC   *usecase.ListJobsUsecase
	GetJobUC     *usecase.GetJobUsecase
	CreateJobUC  *usecase.CreateJobUsecase
	UpdateJobUC  *usecase.UpdateJobUsecase
	DeleteJobUC  *usecase.DeleteJobUsecase
	AnalyzeJobUC *usecase.AnalyzeJobUsecase

	Repo         repository.JobRepository
	HealthChecks map[string]HealthCheck

	// AnalysisConfigured reports whether a completion credential is set.
	AnalysisConfigured func() bool

	// RateCounter backs the analysis rate limit. RateLimitPerMin <= 0 disables it.
	RateCounter     repository.WindowCounter
	RateLimitPerMin int

	MaxBodyBytes   int64
	StreamInterval time.Duration
	Logger         *zap.Logger
}

// NewRouter creates and configures the Gin router with all routes and middleware.
func NewRouter(deps *RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.Metrics())

	// Metrics endpoint (no rate limiting)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(middleware.BodySizeLimit(deps.MaxBodyBytes))
	{
		healthHandler := NewHealthHandler(deps.Repo, deps.HealthChecks, deps.AnalysisConfigured, deps.Logger)
		api.GET("/health", healthHandler.Health)

		statusHandler := NewStatusHandler()
		api.GET("/statuses", statusHandler.List)

		jobHandler := NewJobHandler(deps.ListJobsUC, deps.GetJobUC, deps.CreateJobUC, deps.UpdateJobUC, deps.DeleteJobUC, deps.Logger)
		api.GET("/jobs", jobHandler.List)
		api.POST("/jobs", jobHandler.Create)
		api.GET("/jobs/:id", jobHandler.GetByID)
		api.PUT("/jobs/:id", jobHandler.Update)
		api.DELETE("/jobs/:id", jobHandler.Delete)

		// WebSocket for live updates of a single job
		wsHandler := NewWebSocketHandler(deps.GetJobUC, deps.StreamInterval, deps.Logger)
		api.GET("/jobs/:id/stream", wsHandler.Stream)

		// Analysis calls a paid upstream API, so it is the only rate-limited route
		analysisHandler := NewAnalysisHandler(deps.AnalyzeJobUC, deps.Logger)
		api.POST("/analyze",
			middleware.RateLimiter(deps.RateCounter, deps.RateLimitPerMin, deps.Logger),
			analysisHandler.Analyze,
		)
	}

	return router
}
