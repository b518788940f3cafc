package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/sevigo/pr-tracker/internal/core"
)

const refreshTimeout = 2 * time.Minute

// Refresher refetches and reclassifies one pull request.
type Refresher interface {
	Refresh(ctx context.Context, ref core.PRRef, trigger core.Trigger) error
}

// RefreshJob runs a Refresher for each dispatched request.
type RefreshJob struct {
	refresher Refresher
	logger    *slog.Logger
}

// NewRefreshJob creates a core.Job that refreshes pull requests.
func NewRefreshJob(refresher Refresher, logger *slog.Logger) core.Job {
	if refresher == nil {
		panic("refresher cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &RefreshJob{refresher: refresher, logger: logger}
}

// Run refreshes the requested pull request, bounded by refreshTimeout.
func (j *RefreshJob) Run(ctx context.Context, req core.RefreshRequest) error {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	trigger := req.Trigger
	if trigger == "" {
		trigger = core.TriggerWebhook
	}
	return j.refresher.Refresh(ctx, req.Ref, trigger)
}
