package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/sevigo/pr-tracker/internal/approval"
	"github.com/sevigo/pr-tracker/internal/core"
	"github.com/sevigo/pr-tracker/internal/metrics"
	"github.com/sevigo/pr-tracker/internal/storage"
)

// SyncReviewerGroup refreshes the backend review group from GitHub. When membership
// changed, a new snapshot version is stored and every open PR is reclassified.
func (c *Controller) SyncReviewerGroup(ctx context.Context) (bool, error) {
	changed := false
	err := c.withLease(ctx, "reviewer-sync", func(ctx context.Context) error {
		members, err := c.fetcher.TeamMembers(ctx, c.cfg.Org, c.cfg.ReviewerTeam)
		if err != nil {
			metrics.RecordFetchFailure("team_members")
			return err
		}
		fresh := core.NewReviewerGroup(0, members)

		current, err := c.store.LatestReviewerGroup(ctx)
		switch {
		case errors.Is(err, storage.ErrNotFound):
		case err != nil:
			return err
		case current.SameMembers(fresh):
			metrics.RecordReviewerGroupSync(false)
			return nil
		}

		saved, err := c.store.SaveReviewerGroup(ctx, c.cfg.ReviewerTeam, members)
		if err != nil {
			return err
		}
		changed = true
		metrics.RecordReviewerGroupSync(true)
		c.logger.Info("reviewer group changed", "team", c.cfg.ReviewerTeam, "version", saved.Version, "members", saved.Members())

		n, err := c.ReclassifyAll(ctx)
		c.logger.Info("reclassified open pull requests after reviewer change", "count", n)
		return err
	})
	return changed, err
}

// ReclassifyAll re-runs the classifiers for every stored open PR without fetching
// from GitHub. It returns the number of PRs reclassified.
func (c *Controller) ReclassifyAll(ctx context.Context) (int, error) {
	prs, err := c.store.ListOpenPullRequests(ctx, storage.ListFilter{})
	if err != nil {
		return 0, err
	}

	var errs []error
	done := 0
	for _, pr := range prs {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if err := c.Reclassify(ctx, pr.ID); err != nil {
			c.logger.Error("reclassify failed", "pr", pr.Ref().String(), "error", err)
			errs = append(errs, err)
			continue
		}
		done++
	}
	return done, errors.Join(errs...)
}

// Reclassify re-runs the classifiers on the stored data of one PR.
func (c *Controller) Reclassify(ctx context.Context, prID int64) error {
	stored, err := c.store.GetPullRequestByID(ctx, prID)
	if err != nil {
		return fmt.Errorf("load pr %d: %w", prID, err)
	}
	ref := stored.Ref()

	unlock := c.lock(ref)
	defer unlock()

	var prior *core.PullRequest
	var state core.DerivedState
	err = c.tx.Do(ctx, func(ctx context.Context) error {
		var err error
		prior, err = c.store.LockPullRequest(ctx, stored.Repository, stored.Number)
		if err != nil {
			return err
		}

		group, err := c.reviewerGroup(ctx)
		if err != nil {
			return fmt.Errorf("load reviewer group: %w", err)
		}
		failing, err := c.storedFailing(ctx, prior)
		if err != nil {
			return err
		}
		list, err := c.store.ListCommits(ctx, prior.ID)
		if err != nil {
			return fmt.Errorf("load commits: %w", err)
		}
		var commits *[]core.Commit
		if len(list) > 0 {
			commits = &list
		}

		state, err = c.classifyStored(ctx, prior, prior.DerivedState, failing, commits, group)
		return err
	})
	if err != nil {
		metrics.RecordRefresh(core.TriggerReclassify, metrics.OutcomeError)
		return fmt.Errorf("reclassify %s: %w", ref, err)
	}
	metrics.RecordRefresh(core.TriggerReclassify, metrics.OutcomeUpdated)

	updated := *prior
	updated.DerivedState = state
	c.afterClassify(ctx, prior, &updated)
	return nil
}

// storedFailing returns the failing-check detail from the cache, falling back to
// stored check rows. A failed row read aborts the transaction, so it is returned.
func (c *Controller) storedFailing(ctx context.Context, pr *core.PullRequest) (*[]core.CheckResult, error) {
	ref := pr.Ref()
	cached, ok, err := c.failing.Get(ref)
	if err != nil {
		c.logger.Warn("failing-check cache read failed", "pr", ref.String(), "error", err)
	}
	if ok {
		return &cached, nil
	}

	checks, err := c.store.ListChecks(ctx, pr.ID)
	if err != nil {
		return nil, fmt.Errorf("load stored checks: %w", err)
	}
	summary := approval.Summarize(checks)
	return &summary.Failing, nil
}
