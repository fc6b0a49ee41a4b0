package services

import (
	"github.com/sjperalta/fintera-invest/internal/jobs"
)

// Scheduled job names registered by the API server
const (
	JobProjectionCacheCleanup = "projection_cache_cleanup"
	JobRateLimitCleanup       = "rate_limit_cleanup"
)

// JobStatus describes the pool that fans out sweep projections, the sweeps
// it has served and the maintenance jobs scheduled on it
type JobStatus struct {
	Pool      jobs.WorkerStats     `json:"pool"`
	Sweeps    SweepStats           `json:"sweeps"`
	Scheduled []jobs.ScheduleStats `json:"scheduled"`
}

type JobService struct {
	worker *jobs.Worker
	sweeps *SweepService
}

func NewJobService(worker *jobs.Worker, sweeps *SweepService) *JobService {
	return &JobService{
		worker: worker,
		sweeps: sweeps,
	}
}

// Status snapshots the pool, sweep totals and scheduled jobs
func (s *JobService) Status() JobStatus {
	return JobStatus{
		Pool:      s.worker.GetStats(),
		Sweeps:    s.sweeps.Stats(),
		Scheduled: s.worker.Schedules(),
	}
}
