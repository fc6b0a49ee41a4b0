package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/fintera-invest/internal/models"
	"github.com/sjperalta/fintera-invest/internal/projection"
	"github.com/sjperalta/fintera-invest/internal/services"
)

type SweepHandler struct {
	sweepSvc *services.SweepService
}

func NewSweepHandler(sweepSvc *services.SweepService) *SweepHandler {
	return &SweepHandler{sweepSvc: sweepSvc}
}

// @Summary What-if Sweep
// @Description Runs one independent projection per value of a single parameter
// @Tags Projections
// @Accept json
// @Produce json
// @Param request body models.SweepRequest true "Base parameters, field and values"
// @Success 200 {object} models.SweepResponse
// @Failure 400 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /projections/sweep [post]
func (h *SweepHandler) Sweep(c *gin.Context) {
	req := models.SweepRequest{Parameters: projection.DefaultParameters()}
	limitBody(c)
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Field == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field is required"})
		return
	}

	resp, err := h.sweepSvc.Sweep(c.Request.Context(), req.Parameters, req.Field, req.Values)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
