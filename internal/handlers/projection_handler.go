package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/fintera-invest/internal/models"
	"github.com/sjperalta/fintera-invest/internal/projection"
	"github.com/sjperalta/fintera-invest/internal/services"
)

type ProjectionHandler struct {
	projectionSvc *services.ProjectionService
	exportSvc     *services.ExportService
}

func NewProjectionHandler(projectionSvc *services.ProjectionService, exportSvc *services.ExportService) *ProjectionHandler {
	return &ProjectionHandler{
		projectionSvc: projectionSvc,
		exportSvc:     exportSvc,
	}
}

// @Summary Default Parameters
// @Description Returns the default projection assumptions and supported currencies
// @Tags Projections
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /projections/defaults [get]
func (h *ProjectionHandler) Defaults(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"parameters": projection.DefaultParameters(),
		"fields":     projection.Fields(),
		"currencies": models.SupportedCurrencies(),
	})
}

// @Summary Run Projection
// @Description Computes the year-by-year projection. Omitted parameters use the defaults.
// @Tags Projections
// @Accept json
// @Produce json
// @Param currency query string false "Display currency (INR, USD, EUR)"
// @Param request body models.ProjectionRequest true "Projection parameters"
// @Success 200 {object} models.ProjectionResponse
// @Failure 400 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /projections [post]
func (h *ProjectionHandler) Create(c *gin.Context) {
	resp, ok := h.run(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Projection Series
// @Description Returns chart-ready series scaled to crores (INR) or millions
// @Tags Projections
// @Accept json
// @Produce json
// @Param currency query string false "Display currency (INR, USD, EUR)"
// @Param request body models.ProjectionRequest true "Projection parameters"
// @Success 200 {object} models.ProjectionSeries
// @Router /projections/series [post]
func (h *ProjectionHandler) Series(c *gin.Context) {
	currency, err := h.projectionSvc.ResolveCurrency(c.Query("currency"))
	if err != nil {
		respondError(c, err)
		return
	}

	params, err := bindParameters(c)
	if err != nil {
		respondBindError(c, err)
		return
	}

	run, err := h.projectionSvc.Run(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.projectionSvc.Series(run.Projection, currency))
}

// @Summary Export Projection
// @Description Generates and downloads the projection table
// @Tags Projections
// @Accept json
// @Produce application/octet-stream
// @Param format query string true "Export format (csv, xlsx, pdf, report)"
// @Param currency query string false "Display currency (INR, USD, EUR)"
// @Param request body models.ProjectionRequest true "Projection parameters"
// @Router /projections/export [post]
func (h *ProjectionHandler) Export(c *gin.Context) {
	format := strings.ToLower(c.Query("format"))
	contentType, supported := services.ContentTypes[format]
	if !supported {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format (csv, xlsx, pdf, report)"})
		return
	}

	resp, ok := h.run(c)
	if !ok {
		return
	}

	data, filename, err := h.exportSvc.Export(c.Request.Context(), format, resp)
	if err != nil {
		respondError(c, fmt.Errorf("failed to generate %s: %w", format, err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}

// run binds, runs and rounds a projection, writing the error response
// itself when it fails
func (h *ProjectionHandler) run(c *gin.Context) (*models.ProjectionResponse, bool) {
	currency, err := h.projectionSvc.ResolveCurrency(c.Query("currency"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	params, err := bindParameters(c)
	if err != nil {
		respondBindError(c, err)
		return nil, false
	}

	run, err := h.projectionSvc.Run(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	resp, err := models.NewProjectionResponse(run.ID, run.Projection, currency)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return &resp, true
}
