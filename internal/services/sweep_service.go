package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sjperalta/fintera-invest/internal/jobs"
	"github.com/sjperalta/fintera-invest/internal/models"
	"github.com/sjperalta/fintera-invest/internal/projection"
	"github.com/sjperalta/fintera-invest/pkg/logger"
)

// SweepService runs what-if batches: one independent projection per value
// of a single parameter, fanned out over the worker pool
type SweepService struct {
	projections *ProjectionService
	worker      *jobs.Worker

	completed atomic.Int64
	failed    atomic.Int64
	runs      atomic.Int64
}

// SweepStats counts finished sweeps and the projections they ran
type SweepStats struct {
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
	Runs      int64 `json:"runs"`
}

// Stats reports sweep totals since startup
func (s *SweepService) Stats() SweepStats {
	return SweepStats{
		Completed: s.completed.Load(),
		Failed:    s.failed.Load(),
		Runs:      s.runs.Load(),
	}
}

func NewSweepService(projections *ProjectionService, worker *jobs.Worker) *SweepService {
	return &SweepService{
		projections: projections,
		worker:      worker,
	}
}

// Sweep returns one run per value, in input order. Any failing run fails
// the whole sweep.
func (s *SweepService) Sweep(ctx context.Context, base projection.Parameters, field string, values []float64) (*models.SweepResponse, error) {
	if len(values) == 0 {
		return nil, ErrEmptySweep
	}
	if limit := s.projections.Limits().MaxSweepRuns; limit > 0 && len(values) > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrSweepTooLarge, len(values), limit)
	}

	// Resolve every variant up front so bad input fails before any work
	variants := make([]projection.Parameters, len(values))
	for i, v := range values {
		p, err := base.With(field, v)
		if err != nil {
			return nil, err
		}
		variants[i] = p
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runs := make([]models.SweepRun, len(values))
	errs := make([]error, len(values))
	var wg sync.WaitGroup

	for i := range variants {
		wg.Add(1)
		err := s.worker.Enqueue(func(_ context.Context) error {
			defer wg.Done()
			if ctx.Err() != nil {
				errs[i] = ctx.Err()
				return nil
			}
			run, err := s.projections.Run(ctx, variants[i])
			if err != nil {
				errs[i] = err
				cancel()
				return err
			}
			runs[i], err = models.NewSweepRun(values[i], run.Projection)
			if err != nil {
				errs[i] = err
				cancel()
			}
			return err
		})
		if err != nil {
			wg.Done()
			errs[i] = err
			cancel()
			break
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-parent.Done():
		return nil, parent.Err()
	case <-s.worker.Context().Done():
		return nil, jobs.ErrWorkerStopped
	}

	// Report the first real failure rather than a cancellation it caused
	var firstErr error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if firstErr == nil || (errors.Is(firstErr, context.Canceled) && !errors.Is(err, context.Canceled)) {
			firstErr = err
		}
	}
	if firstErr != nil {
		s.failed.Add(1)
		return nil, firstErr
	}

	s.completed.Add(1)
	s.runs.Add(int64(len(runs)))
	logger.Info("Sweep completed", "field", field, "runs", len(runs))
	return &models.SweepResponse{Field: field, Runs: runs}, nil
}
