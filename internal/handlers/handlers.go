package handlers

import (
	"github.com/sjperalta/fintera-invest/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health     *HealthHandler
	Projection *ProjectionHandler
	Sweep      *SweepHandler
	Job        *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(),
		Projection: NewProjectionHandler(svcs.Projection, svcs.Export),
		Sweep:      NewSweepHandler(svcs.Sweep),
		Job:        NewJobHandler(svcs.Job),
	}
}
