package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/domain"
	"github.com/Harsh-BH/jobtracker/internal/usecase"
)

const defaultStreamInterval = 500 * time.Millisecond

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS middleware already allows any origin
	},
}

// WebSocketHandler pushes a job to the client every time it changes.
type WebSocketHandler struct {
	getJobUC *usecase.GetJobUsecase
	interval time.Duration
	logger   *zap.Logger
}

// NewWebSocketHandler creates a new WebSocketHandler. A non-positive interval
// selects the default poll interval.
func NewWebSocketHandler(getJobUC *usecase.GetJobUsecase, interval time.Duration, logger *zap.Logger) *WebSocketHandler {
	if interval <= 0 {
		interval = defaultStreamInterval
	}
	return &WebSocketHandler{
		getJobUC: getJobUC,
		interval: interval,
		logger:   logger,
	}
}

// Stream handles GET /api/jobs/:id/stream (WebSocket upgrade)
func (h *WebSocketHandler) Stream(c *gin.Context) {
	id := c.Param("id")

	job, err := h.getJobUC.Execute(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, "Stream job", err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.logger.Debug("WebSocket connection opened", zap.String("job_id", id))

	// The read loop only exists to notice the client going away.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(job); err != nil {
		return
	}
	last := job.UpdatedAt

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("WebSocket client disconnected", zap.String("job_id", id))
			return
		case <-ticker.C:
		}

		job, err := h.getJobUC.Execute(ctx, id)
		if errors.Is(err, domain.ErrJobNotFound) {
			conn.WriteJSON(gin.H{"error": "Job not found"})
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "job deleted"))
			return
		}
		if err != nil {
			h.logger.Warn("WebSocket poll failed", zap.String("job_id", id), zap.Error(err))
			continue
		}

		if job.UpdatedAt.Equal(last) {
			continue
		}
		last = job.UpdatedAt

		if err := conn.WriteJSON(job); err != nil {
			h.logger.Debug("WebSocket write failed (client disconnected)", zap.Error(err))
			return
		}
	}
}
