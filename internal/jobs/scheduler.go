package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sevigo/pr-tracker/internal/config"
	"github.com/sevigo/pr-tracker/internal/reconcile"
)

// Reconciler is the part of the reconciliation controller driven by the scheduler.
type Reconciler interface {
	PollAll(ctx context.Context) error
	Verify(ctx context.Context, sampleSize int) (reconcile.VerifyReport, error)
	SyncReviewerGroup(ctx context.Context) (bool, error)
}

// Scheduler runs the periodic poll, verify and reviewer-sync loops.
type Scheduler struct {
	rec    Reconciler
	cfg    config.SyncConfig
	logger *slog.Logger

	syncNow chan struct{}
}

// NewScheduler creates a Scheduler. A loop whose interval is zero or negative is disabled.
func NewScheduler(rec Reconciler, cfg config.SyncConfig, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		rec:     rec,
		cfg:     cfg,
		logger:  logger,
		syncNow: make(chan struct{}, 1),
	}
}

// TriggerReviewerSync asks the reviewer-sync loop to run as soon as possible.
// Repeated calls before the loop wakes up collapse into one run.
func (s *Scheduler) TriggerReviewerSync() {
	select {
	case s.syncNow <- struct{}{}:
	default:
	}
}

// Run blocks until ctx is cancelled and all loops have returned.
func (s *Scheduler) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Go(func() {
		s.loop(ctx, "poll", s.cfg.PollInterval, nil, func(ctx context.Context) error {
			return s.rec.PollAll(ctx)
		})
	})
	wg.Go(func() {
		s.loop(ctx, "verify", s.cfg.VerifyInterval, nil, func(ctx context.Context) error {
			report, err := s.rec.Verify(ctx, s.cfg.VerifySampleSize)
			if report.Discrepancies > 0 {
				s.logger.Warn("verification repaired pull requests", "count", report.Discrepancies)
			}
			return err
		})
	})
	wg.Go(func() {
		s.loop(ctx, "reviewer-sync", s.cfg.ReviewerSyncInterval, s.syncNow, func(ctx context.Context) error {
			_, err := s.rec.SyncReviewerGroup(ctx)
			return err
		})
	})
	wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, name string, interval time.Duration, wake <-chan struct{}, fn func(context.Context) error) {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	} else if wake == nil {
		s.logger.Info("periodic job disabled", "job", name)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
		case <-wake:
		}
		s.run(ctx, name, fn)
	}
}

func (s *Scheduler) run(ctx context.Context, name string, fn func(context.Context) error) {
	start := time.Now()
	err := fn(ctx)
	switch {
	case errors.Is(err, reconcile.ErrLeaseHeld):
		s.logger.Debug("periodic job skipped, lease held elsewhere", "job", name)
	case errors.Is(err, context.Canceled):
	case err != nil:
		s.logger.Error("periodic job failed", "job", name, "error", err)
	default:
		s.logger.Debug("periodic job finished", "job", name, "duration", time.Since(start))
	}
}
