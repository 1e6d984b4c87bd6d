package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/repository"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck pings one configured dependency.
type HealthCheck func(ctx context.Context) error

// HealthHandler handles health check requests.
type HealthHandler struct {
	repo               repository.JobRepository
	checks             map[string]HealthCheck
	analysisConfigured func() bool
	logger             *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. checks holds one entry per
// configured dependency; unconfigured dependencies are omitted.
// analysisConfigured may be nil, in which case the analysis entry is left out.
func NewHealthHandler(repo repository.JobRepository, checks map[string]HealthCheck, analysisConfigured func() bool, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		repo:               repo,
		checks:             checks,
		analysisConfigured: analysisConfigured,
		logger:             logger,
	}
}

// Health handles GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	healthy := true
	services := gin.H{}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.logger.Warn("Health check failed", zap.String("service", name), zap.Error(err))
			services[name] = "down"
			healthy = false
			continue
		}
		services[name] = "ok"
	}

	body := gin.H{"status": "ok", "services": services}
	// A missing credential disables one feature; it does not make the service unhealthy.
	if h.analysisConfigured != nil {
		body["analysis"] = "unconfigured"
		if h.analysisConfigured() {
			body["analysis"] = "configured"
		}
	}
	count, err := h.repo.Count(ctx)
	if err != nil {
		h.logger.Warn("Health check failed", zap.String("service", "store"), zap.Error(err))
		healthy = false
	} else {
		body["jobs"] = count
	}

	if !healthy {
		body["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}
