package services

import (
	"time"

	"github.com/sjperalta/fintera-invest/internal/config"
	"github.com/sjperalta/fintera-invest/internal/jobs"
	"github.com/sjperalta/fintera-invest/internal/repository"
)

// Services holds all service instances
type Services struct {
	Projection *ProjectionService
	Sweep      *SweepService
	Report     *ReportService
	Export     *ExportService
	Job        *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config) *Services {
	projectionSvc := NewProjectionService(
		repos.Projections,
		time.Duration(cfg.CacheTTLMinutes)*time.Minute,
		Limits{
			MaxHoldingYears: cfg.MaxHoldingYears,
			MaxLoanYears:    cfg.MaxLoanYears,
			MaxSweepRuns:    cfg.MaxSweepRuns,
		},
		cfg.DefaultCurrency,
	)
	reportSvc := NewReportService()
	sweepSvc := NewSweepService(projectionSvc, worker)

	return &Services{
		Projection: projectionSvc,
		Sweep:      sweepSvc,
		Report:     reportSvc,
		Export:     NewExportService(reportSvc), // ReportSvc renders the "report" format
		Job:        NewJobService(worker, sweepSvc),
	}
}
