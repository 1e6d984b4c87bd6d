package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/domain"
	"github.com/Harsh-BH/jobtracker/internal/usecase"
)

// AnalysisHandler handles job description analysis requests.
type AnalysisHandler struct {
	analyzeUC *usecase.AnalyzeJobUsecase
	logger    *zap.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analyzeUC *usecase.AnalyzeJobUsecase, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{analyzeUC: analyzeUC, logger: logger}
}

// Analyze handles POST /api/analyze
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req domain.AnalyzeRequest
	if !bindJSON(c, &req) {
		return
	}

	analysis, err := h.analyzeUC.Execute(c.Request.Context(), &req)
	if err != nil {
		writeError(c, h.logger, "Analyze job description", err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}
