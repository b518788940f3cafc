// Package jobs defines background work: refresh jobs fed by webhooks and the
// periodic poll, verify and reviewer-sync loops.
package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/sevigo/pr-tracker/internal/core"
	"github.com/sevigo/pr-tracker/internal/metrics"
)

var (
	// ErrQueueFull is returned by Dispatch when the job queue cannot take more work.
	ErrQueueFull = errors.New("job queue is full")
	// ErrStopped is returned by Dispatch after Stop.
	ErrStopped = errors.New("dispatcher stopped")
)

const queueSize = 100

// dispatcher implements core.JobDispatcher and manages a pool of worker goroutines
// for processing refresh requests.
type dispatcher struct {
	ctx        context.Context
	job        core.Job                 // Job implementation executed by each worker.
	jobQueue   chan core.RefreshRequest // Queue of pending refresh requests.
	maxWorkers int                      // Number of concurrent workers.
	wg         sync.WaitGroup           // Tracks active workers for graceful shutdown.
	logger     *slog.Logger

	mu      sync.Mutex
	pending map[core.PRRef]struct{} // PRs queued but not yet picked up by a worker.
	stopped bool
}

// NewDispatcher initializes a dispatcher with a worker pool.
// If maxWorkers is 0 or negative, it defaults to 1.
func NewDispatcher(ctx context.Context, job core.Job, maxWorkers int, logger *slog.Logger) core.JobDispatcher {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	d := &dispatcher{
		ctx:        ctx,
		job:        job,
		maxWorkers: maxWorkers,
		jobQueue:   make(chan core.RefreshRequest, queueSize),
		logger:     logger,
		pending:    make(map[core.PRRef]struct{}),
	}
	d.startWorkers()
	return d
}

// startWorkers launches maxWorkers goroutines to process jobs from the queue.
func (d *dispatcher) startWorkers() {
	for i := range d.maxWorkers {
		d.wg.Add(1)
		go d.startWorker(i)
	}
}

// startWorker processes requests from the queue until it's closed.
func (d *dispatcher) startWorker(workerID int) {
	defer d.wg.Done()
	d.logger.Debug("starting refresh worker", "id", workerID)

	for req := range d.jobQueue {
		d.mu.Lock()
		delete(d.pending, req.Ref)
		d.mu.Unlock()
		metrics.SetQueueDepth(len(d.jobQueue))

		d.process(workerID, req)
	}

	d.logger.Debug("shutting down refresh worker", "id", workerID)
}

func (d *dispatcher) process(workerID int, req core.RefreshRequest) {
	d.logger.Debug("worker processing refresh",
		"worker_id", workerID,
		"pr", req.Ref.String(),
		"reason", req.Reason,
	)

	if err := d.job.Run(d.ctx, req); err != nil {
		d.logger.Error("refresh job failed",
			"pr", req.Ref.String(),
			"trigger", req.Trigger,
			"error", err,
		)
	}
}

// Dispatch queues a refresh request. A request for a PR that is already waiting in
// the queue is coalesced into the queued one.
func (d *dispatcher) Dispatch(_ context.Context, req core.RefreshRequest) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return ErrStopped
	}
	if _, queued := d.pending[req.Ref]; queued {
		d.logger.Debug("refresh already queued, coalescing", "pr", req.Ref.String(), "reason", req.Reason)
		return nil
	}

	select {
	case d.jobQueue <- req:
		d.pending[req.Ref] = struct{}{}
		metrics.SetQueueDepth(len(d.jobQueue))
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop gracefully shuts down the dispatcher, waiting for all workers to finish.
func (d *dispatcher) Stop() {
	d.logger.Info("stopping dispatcher and waiting for jobs to finish")
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.jobQueue)
	d.mu.Unlock()
	d.wg.Wait()
	d.logger.Info("all refresh jobs have finished")
}
