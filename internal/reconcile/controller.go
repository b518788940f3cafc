// Package reconcile keeps stored pull request state in line with GitHub. Every write
// path (webhook, poll, verify, reviewer sync) ends in the same locked classify step.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/sevigo/pr-tracker/internal/cache"
	"github.com/sevigo/pr-tracker/internal/core"
	"github.com/sevigo/pr-tracker/internal/github"
	"github.com/sevigo/pr-tracker/internal/storage"
)

// ErrLeaseHeld is returned when another process currently runs the same scan.
var ErrLeaseHeld = errors.New("lease held by another worker")

// Config holds the controller settings that do not come from a dependency.
type Config struct {
	Org          string
	ReviewerTeam string
	Repositories []string
	LeaseTTL     time.Duration
	// Holder identifies this process in job_leases; defaults to hostname and pid.
	Holder string
	// Now overrides the clock in tests.
	Now func() time.Time
}

// Controller is the reconciliation controller.
type Controller struct {
	store     storage.Store
	tx        storage.TxManager
	fetcher   github.Fetcher
	failing   cache.FailingChecks
	publisher github.StatusUpdater
	rules     *core.GateRules
	cfg       Config
	now       func() time.Time
	logger    *slog.Logger

	locks sync.Map
}

// NewController wires a Controller. publisher may be nil to skip publishing the gate check.
func NewController(
	store storage.Store,
	tx storage.TxManager,
	fetcher github.Fetcher,
	failing cache.FailingChecks,
	publisher github.StatusUpdater,
	rules *core.GateRules,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if store == nil || tx == nil || fetcher == nil || failing == nil || logger == nil {
		panic("NewController: store, tx, fetcher, failing and logger are required")
	}
	if rules == nil {
		rules = core.DefaultGateRules()
	}
	if cfg.LeaseTTL <= 0 {
		cfg.LeaseTTL = 15 * time.Minute
	}
	if cfg.Holder == "" {
		host, _ := os.Hostname()
		cfg.Holder = fmt.Sprintf("%s-%d", host, os.Getpid())
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Controller{
		store:     store,
		tx:        tx,
		fetcher:   fetcher,
		failing:   failing,
		publisher: publisher,
		rules:     rules,
		cfg:       cfg,
		now:       func() time.Time { return now().UTC() },
		logger:    logger,
	}
}

// lock serialises work on one pull request inside this process. The row lock taken
// in the transaction covers other processes.
func (c *Controller) lock(ref core.PRRef) func() {
	val, _ := c.locks.LoadOrStore(ref.String(), &sync.Mutex{})
	mux := val.(*sync.Mutex)
	mux.Lock()
	return mux.Unlock
}

// withLease runs fn while holding the named lease.
func (c *Controller) withLease(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ok, err := c.store.AcquireLease(ctx, name, c.cfg.Holder, c.cfg.LeaseTTL)
	if err != nil {
		return fmt.Errorf("acquire lease %s: %w", name, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrLeaseHeld)
	}
	defer func() {
		if err := c.store.ReleaseLease(context.WithoutCancel(ctx), name, c.cfg.Holder); err != nil {
			c.logger.Warn("failed to release lease", "lease", name, "error", err)
		}
	}()
	return fn(ctx)
}

// reviewerGroup returns the latest stored snapshot, bootstrapping it from GitHub on first use.
func (c *Controller) reviewerGroup(ctx context.Context) (core.ReviewerGroup, error) {
	group, err := c.store.LatestReviewerGroup(ctx)
	if err == nil {
		return group, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return core.ReviewerGroup{}, err
	}

	members, err := c.fetcher.TeamMembers(ctx, c.cfg.Org, c.cfg.ReviewerTeam)
	if err != nil {
		return core.ReviewerGroup{}, fmt.Errorf("bootstrap reviewer group: %w", err)
	}
	group, err = c.store.SaveReviewerGroup(ctx, c.cfg.ReviewerTeam, members)
	if err != nil {
		return core.ReviewerGroup{}, err
	}
	c.logger.Info("reviewer group bootstrapped", "team", c.cfg.ReviewerTeam, "version", group.Version, "members", len(members))
	return group, nil
}
