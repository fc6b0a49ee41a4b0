package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/fintera-invest/internal/services"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobSvc *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobSvc,
	}
}

// Status reports the sweep pool and the cache cleanup jobs
// @Summary Get sweep pool and maintenance job status
// @Description Pool load, sweep totals since startup, and the last run of each scheduled cleanup job
// @Tags Jobs
// @Produce json
// @Success 200 {object} services.JobStatus
// @Router /jobs/status [get]
func (h *JobHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.jobService.Status())
}
