package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/domain"
	"github.com/Harsh-BH/jobtracker/internal/usecase"
)

// JobHandler handles HTTP requests for tracked jobs.
type JobHandler struct {
	listUC   *usecase.ListJobsUsecase
	getUC    *usecase.GetJobUsecase
	createUC *usecase.CreateJobUsecase
	updateUC *usecase.UpdateJobUsecase
	deleteUC *usecase.DeleteJobUsecase
	logger   *zap.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(
	listUC *usecase.ListJobsUsecase,
	getUC *usecase.GetJobUsecase,
	createUC *usecase.CreateJobUsecase,
	updateUC *usecase.UpdateJobUsecase,
	deleteUC *usecase.DeleteJobUsecase,
	logger *zap.Logger,
) *JobHandler {
	return &JobHandler{
		listUC:   listUC,
		getUC:    getUC,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		logger:   logger,
	}
}

// List handles GET /api/jobs
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "List jobs", err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Create handles POST /api/jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req domain.CreateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.createUC.Execute(c.Request.Context(), &req)
	if err != nil {
		writeError(c, h.logger, "Create job", err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// GetByID handles GET /api/jobs/:id
func (h *JobHandler) GetByID(c *gin.Context) {
	job, err := h.getUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, "Get job", err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Update handles PUT /api/jobs/:id
func (h *JobHandler) Update(c *gin.Context) {
	var req domain.UpdateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.updateUC.Execute(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, h.logger, "Update job", err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Delete handles DELETE /api/jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.deleteUC.Execute(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, "Delete job", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}
