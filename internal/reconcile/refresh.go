package reconcile

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sevigo/pr-tracker/internal/approval"
	"github.com/sevigo/pr-tracker/internal/core"
	"github.com/sevigo/pr-tracker/internal/github"
	"github.com/sevigo/pr-tracker/internal/metrics"
	"github.com/sevigo/pr-tracker/internal/storage"
)

// snapshot is everything fetched from GitHub for one pull request.
type snapshot struct {
	reviews  []core.Review
	checks   []core.CheckResult
	comments []core.Comment
	// commits is nil when the commit lookup failed.
	commits *[]core.Commit
}

// Refresh refetches one pull request and reclassifies it. A PR that no longer exists
// on GitHub is deleted together with its children.
func (c *Controller) Refresh(ctx context.Context, ref core.PRRef, trigger core.Trigger) error {
	unlock := c.lock(ref)
	defer unlock()

	fetchedAt := c.now()
	pr, err := c.fetcher.PullRequest(ctx, ref)
	if err != nil {
		if github.IsNotFound(err) {
			return c.remove(ctx, ref, trigger)
		}
		metrics.RecordFetchFailure("pull_request")
		metrics.RecordRefresh(trigger, metrics.OutcomeError)
		return err
	}
	pr.FetchedAt = fetchedAt

	snap, err := c.fetchSnapshot(ctx, pr)
	if err != nil {
		metrics.RecordRefresh(trigger, metrics.OutcomeError)
		return err
	}

	checks := approval.DedupeChecks(snap.checks)
	summary := approval.Summarize(checks)
	pr.TotalChecks = summary.Total
	pr.SuccessfulChecks = summary.Successful
	pr.FailedChecks = summary.Failed
	failing := summary.Failing

	var prior *core.PullRequest
	var state core.DerivedState
	err = c.tx.Do(ctx, func(ctx context.Context) error {
		var err error
		prior, err = c.store.LockPullRequest(ctx, pr.Repository, pr.Number)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			prior = nil
		case err != nil:
			return err
		case prior.FetchedAt.After(fetchedAt):
			return storage.ErrStale
		}

		// Read under the row lock so a reviewer sync that committed meanwhile is not undone.
		group, err := c.reviewerGroup(ctx)
		if err != nil {
			return fmt.Errorf("load reviewer group: %w", err)
		}

		id, err := c.store.UpsertPullRequest(ctx, pr)
		if err != nil {
			return err
		}
		pr.ID = id

		if err := c.store.ReplaceReviews(ctx, id, snap.reviews); err != nil {
			return err
		}
		if err := c.store.ReplaceChecks(ctx, id, checks); err != nil {
			return err
		}
		if err := c.store.ReplaceComments(ctx, id, snap.comments); err != nil {
			return err
		}
		if snap.commits != nil {
			if err := c.store.ReplaceCommits(ctx, id, *snap.commits); err != nil {
				return err
			}
		}

		state, err = c.classifyStored(ctx, pr, priorState(prior), &failing, snap.commits, group)
		return err
	})
	if errors.Is(err, storage.ErrStale) {
		c.logger.Debug("dropping stale refresh", "pr", ref.String(), "trigger", trigger)
		metrics.RecordRefresh(trigger, metrics.OutcomeStale)
		return nil
	}
	if err != nil {
		metrics.RecordRefresh(trigger, metrics.OutcomeError)
		return fmt.Errorf("persist %s: %w", ref, err)
	}

	if err := c.failing.Set(ref, failing); err != nil {
		c.logger.Warn("failed to cache failing checks", "pr", ref.String(), "error", err)
	}
	metrics.RecordRefresh(trigger, metrics.OutcomeUpdated)
	pr.DerivedState = state
	c.afterClassify(ctx, prior, pr)

	c.logger.Info("pull request refreshed",
		"pr", ref.String(),
		"trigger", trigger,
		"backend", state.BackendApprovalStatus,
		"ready", state.ReadyForBackendReview,
		"fully_approved", state.FullyApproved,
		"narrative", state.Narrative.Kind,
	)
	return nil
}

// fetchSnapshot loads the PR children in parallel. Commit lookup failures are
// tolerated and reported as a nil history.
func (c *Controller) fetchSnapshot(ctx context.Context, pr *core.PullRequest) (*snapshot, error) {
	ref := pr.Ref()
	snap := &snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reviews, err := c.fetcher.Reviews(gctx, ref)
		if err != nil {
			metrics.RecordFetchFailure("reviews")
			return err
		}
		snap.reviews = reviews
		return nil
	})
	g.Go(func() error {
		checks, err := c.fetcher.Checks(gctx, ref, pr.HeadSHA, pr.BaseBranch)
		if err != nil {
			metrics.RecordFetchFailure("checks")
			return err
		}
		snap.checks = checks
		return nil
	})
	g.Go(func() error {
		comments, err := c.fetcher.Comments(gctx, ref)
		if err != nil {
			metrics.RecordFetchFailure("comments")
			return err
		}
		snap.comments = comments
		return nil
	})
	g.Go(func() error {
		commits, err := c.fetcher.Commits(gctx, ref)
		if err != nil {
			metrics.RecordFetchFailure("commits")
			c.logger.Warn("commit lookup failed, treating history as unavailable", "pr", ref.String(), "error", err)
			return nil
		}
		snap.commits = &commits
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// classifyStored reads reviews and comments back from the store inside the current
// transaction, classifies and persists the derived state.
func (c *Controller) classifyStored(
	ctx context.Context,
	pr *core.PullRequest,
	prior core.DerivedState,
	failing *[]core.CheckResult,
	commits *[]core.Commit,
	group core.ReviewerGroup,
) (core.DerivedState, error) {
	reviews, err := c.store.ListReviews(ctx, pr.ID)
	if err != nil {
		return core.DerivedState{}, err
	}
	comments, err := c.store.ListComments(ctx, pr.ID)
	if err != nil {
		return core.DerivedState{}, err
	}

	state := approval.Classify(approval.Input{
		Author:        pr.Author,
		State:         pr.State,
		Draft:         pr.Draft,
		TotalChecks:   pr.TotalChecks,
		FailedChecks:  pr.FailedChecks,
		FailingChecks: failing,
		Reviews:       reviews,
		Comments:      comments,
		Commits:       commits,
		Group:         group,
		Rules:         c.rules,
	}, prior, c.now())

	if err := c.store.SaveDerivedState(ctx, pr.ID, state, group.Version); err != nil {
		return core.DerivedState{}, err
	}
	return state, nil
}

// afterClassify runs the side effects of a committed classification.
func (c *Controller) afterClassify(ctx context.Context, prior, pr *core.PullRequest) {
	if pr.ReadyForBackendReview && (prior == nil || !prior.ReadyForBackendReview) && pr.ReadyForBackendReviewAt != nil {
		metrics.ObserveTimeToReady(pr.CreatedAt, *pr.ReadyForBackendReviewAt)
	}

	if c.publisher == nil || !pr.IsOpen() {
		return
	}
	if prior != nil &&
		prior.HeadSHA == pr.HeadSHA &&
		prior.BackendApprovalStatus == pr.BackendApprovalStatus &&
		prior.ReadyForBackendReview == pr.ReadyForBackendReview &&
		prior.FullyApproved == pr.FullyApproved &&
		prior.Narrative == pr.Narrative {
		return
	}
	if err := c.publisher.PublishApprovalCheck(ctx, pr); err != nil {
		c.logger.Warn("failed to publish approval check", "pr", pr.Ref().String(), "error", err)
	}
}

func (c *Controller) remove(ctx context.Context, ref core.PRRef, trigger core.Trigger) error {
	err := c.store.DeletePullRequest(ctx, ref.FullName(), ref.Number)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		metrics.RecordRefresh(trigger, metrics.OutcomeError)
		return fmt.Errorf("delete %s: %w", ref, err)
	}
	if err := c.failing.Delete(ref); err != nil {
		c.logger.Warn("failed to drop cached failing checks", "pr", ref.String(), "error", err)
	}
	metrics.RecordRefresh(trigger, metrics.OutcomeDeleted)
	c.logger.Info("pull request no longer exists on GitHub, removed", "pr", ref.String(), "trigger", trigger)
	return nil
}

func priorState(prior *core.PullRequest) core.DerivedState {
	if prior == nil {
		return core.DerivedState{}
	}
	return prior.DerivedState
}
