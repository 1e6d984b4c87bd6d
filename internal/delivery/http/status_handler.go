package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harsh-BH/jobtracker/internal/domain"
)

// StatusHandler lists the application statuses a job can be in.
type StatusHandler struct{}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// List handles GET /api/statuses
func (h *StatusHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, domain.AllStatuses)
}
