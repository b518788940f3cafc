package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/sevigo/pr-tracker/internal/core"
	"github.com/sevigo/pr-tracker/internal/storage"
)

// PollRepository refreshes every open PR of repo ("owner/repo"). Stored PRs that are
// no longer in the live open list are refetched so closes, merges and deletions land.
func (c *Controller) PollRepository(ctx context.Context, repo string) error {
	owner, name, err := core.ParseRepo(repo)
	if err != nil {
		return err
	}

	return c.withLease(ctx, "poll:"+repo, func(ctx context.Context) error {
		live, err := c.fetcher.OpenPullRequests(ctx, owner, name)
		if err != nil {
			return err
		}

		var errs []error
		seen := make(map[int]bool, len(live))
		for _, pr := range live {
			if err := ctx.Err(); err != nil {
				return err
			}
			seen[pr.Number] = true
			if err := c.Refresh(ctx, pr.Ref(), core.TriggerPoll); err != nil {
				c.logger.Error("poll refresh failed", "pr", pr.Ref().String(), "error", err)
				errs = append(errs, err)
			}
		}

		stored, err := c.store.ListOpenPullRequests(ctx, storage.ListFilter{Repository: repo})
		if err != nil {
			return errors.Join(append(errs, err)...)
		}
		for _, pr := range stored {
			if seen[pr.Number] {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := c.Refresh(ctx, pr.Ref(), core.TriggerPoll); err != nil {
				c.logger.Error("refresh of vanished pull request failed", "pr", pr.Ref().String(), "error", err)
				errs = append(errs, err)
			}
		}

		c.logger.Info("repository polled", "repo", repo, "open", len(live), "stored_open", len(stored))
		return errors.Join(errs...)
	})
}

// PollAll polls every configured repository. A repository whose lease is held
// elsewhere is skipped.
func (c *Controller) PollAll(ctx context.Context) error {
	var errs []error
	for _, repo := range c.cfg.Repositories {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := c.PollRepository(ctx, repo)
		switch {
		case errors.Is(err, ErrLeaseHeld):
			c.logger.Info("skipping poll, lease held elsewhere", "repo", repo)
		case err != nil:
			errs = append(errs, fmt.Errorf("poll %s: %w", repo, err))
		}
	}
	return errors.Join(errs...)
}
