package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts every API endpoint on the given group
func RegisterRoutes(api *gin.RouterGroup, h *Handlers) {
	api.GET("/health", h.Health.Index)

	projections := api.Group("/projections")
	{
		projections.GET("/defaults", h.Projection.Defaults)
		projections.POST("", h.Projection.Create)
		projections.POST("/series", h.Projection.Series)
		projections.POST("/export", h.Projection.Export)
		projections.POST("/sweep", h.Sweep.Sweep)
	}

	api.GET("/jobs/status", h.Job.Status)
}
