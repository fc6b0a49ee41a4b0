package jobs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sjperalta/fintera-invest/pkg/logger"
)

// ErrWorkerStopped is returned when a job is submitted after Shutdown
var ErrWorkerStopped = errors.New("worker is shutting down")

// Job is a unit of work: one sweep projection or one maintenance pass
type Job func(ctx context.Context) error

// Worker fans sweep projections out over a fixed pool and runs the
// periodic maintenance jobs
type Worker struct {
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	queue         chan Job
	maxConcurrent int
	stats         WorkerStats
	schedules     map[string]*ScheduleStats
	statsMu       sync.RWMutex
	closeOnce     sync.Once
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	ActiveJobs    int   `json:"active_jobs"`
	CompletedJobs int64 `json:"completed_jobs"`
	FailedJobs    int64 `json:"failed_jobs"`
	QueueLength   int   `json:"queue_length"`
	MaxConcurrent int   `json:"max_concurrent"`
}

// ScheduleStats describes one periodic job and how its runs went
type ScheduleStats struct {
	Name      string     `json:"name"`
	Interval  string     `json:"interval"`
	Runs      int64      `json:"runs"`
	Failures  int64      `json:"failures"`
	LastRunAt *time.Time `json:"last_run_at"`
	LastError string     `json:"last_error,omitempty"`
}

// NewWorker creates a worker with N concurrent processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		ctx:           ctx,
		cancel:        cancel,
		queue:         make(chan Job, 100),
		maxConcurrent: numWorkers,
		schedules:     make(map[string]*ScheduleStats),
	}

	// Start worker goroutines
	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to be processed by the worker pool. When the queue is
// full the job runs synchronously on the caller's goroutine.
func (w *Worker) Enqueue(job Job) error {
	select {
	case <-w.ctx.Done():
		return ErrWorkerStopped
	default:
	}

	select {
	case w.queue <- job:
	default:
		logger.Warn("[Worker] Queue full, running job synchronously")
		w.run("[Worker] Job", job)
	}
	return nil
}

// process handles jobs from the queue
func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			w.run(fmt.Sprintf("[Worker %d] Job", workerID), job)
		}
	}
}

// ScheduleEvery runs a named job at fixed intervals, first after one
// interval has passed. Names should be unique; runs are tracked per name.
func (w *Worker) ScheduleEvery(name string, interval time.Duration, job Job) {
	w.statsMu.Lock()
	w.schedules[name] = &ScheduleStats{Name: name, Interval: interval.String()}
	w.statsMu.Unlock()

	label := fmt.Sprintf("[Scheduler] %s", name)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				err := w.run(label, job)
				w.trackScheduledRun(name, err)
			}
		}
	}()
}

// run executes one job with panic recovery and stats tracking
func (w *Worker) run(label string, job Job) (err error) {
	w.trackJobStart()
	defer w.trackJobEnd()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			logger.Error(fmt.Sprintf("%s panic: %v", label, r))
			w.trackJobFailure()
		}
	}()

	start := time.Now()
	if err = job(w.ctx); err != nil {
		logger.Error(fmt.Sprintf("%s error: %v", label, err))
		w.trackJobFailure()
		return err
	}
	logger.Debug(fmt.Sprintf("%s completed in %v", label, time.Since(start)))
	return nil
}

// Shutdown gracefully stops all workers
func (w *Worker) Shutdown() {
	w.closeOnce.Do(func() {
		w.cancel()
		w.wg.Wait()
	})
}

// Context returns the worker's context for checking cancellation
func (w *Worker) Context() context.Context {
	return w.ctx
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	stats.MaxConcurrent = w.maxConcurrent
	return stats
}

// Schedules lists the periodic jobs by name
func (w *Worker) Schedules() []ScheduleStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	out := make([]ScheduleStats, 0, len(w.schedules))
	for _, s := range w.schedules {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (w *Worker) trackScheduledRun(name string, err error) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	s, ok := w.schedules[name]
	if !ok {
		return
	}
	now := time.Now()
	s.Runs++
	s.LastRunAt = &now
	s.LastError = ""
	if err != nil {
		s.Failures++
		s.LastError = err.Error()
	}
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

// CompletedJobs counts every finished job; FailedJobs is the failing subset
func (w *Worker) trackJobEnd() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
}

func (w *Worker) trackJobFailure() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.FailedJobs++
}
