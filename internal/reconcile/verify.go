package reconcile

import (
	"context"
	"fmt"

	"github.com/sevigo/pr-tracker/internal/approval"
	"github.com/sevigo/pr-tracker/internal/core"
	"github.com/sevigo/pr-tracker/internal/github"
	"github.com/sevigo/pr-tracker/internal/metrics"
)

// VerifyReport summarises one verification pass.
type VerifyReport struct {
	Checked       int `json:"checked"`
	Discrepancies int `json:"discrepancies"`
	Errors        int `json:"errors"`
}

// Verify samples stored open PRs, recomputes backend approval from freshly fetched
// reviews and repairs any PR whose stored status disagrees.
func (c *Controller) Verify(ctx context.Context, sampleSize int) (VerifyReport, error) {
	var report VerifyReport
	if sampleSize <= 0 {
		return report, nil
	}

	err := c.withLease(ctx, "verify", func(ctx context.Context) error {
		sample, err := c.store.SampleForVerification(ctx, sampleSize)
		if err != nil {
			return err
		}
		group, err := c.reviewerGroup(ctx)
		if err != nil {
			return err
		}

		for _, pr := range sample {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := c.verifyOne(ctx, pr, group, &report); err != nil {
				report.Errors++
				c.logger.Error("verification failed", "pr", pr.Ref().String(), "error", err)
			}
		}
		return nil
	})

	c.logger.Info("verification pass finished",
		"checked", report.Checked,
		"discrepancies", report.Discrepancies,
		"errors", report.Errors,
	)
	return report, err
}

func (c *Controller) verifyOne(ctx context.Context, pr *core.PullRequest, group core.ReviewerGroup, report *VerifyReport) error {
	ref := pr.Ref()
	reviews, err := c.fetcher.Reviews(ctx, ref)
	if err != nil {
		if github.IsNotFound(err) {
			return c.Refresh(ctx, ref, core.TriggerVerify)
		}
		metrics.RecordFetchFailure("reviews")
		return err
	}
	report.Checked++

	fresh := approval.BackendApproval(approval.LatestActionable(reviews), group)
	if fresh != pr.BackendApprovalStatus {
		report.Discrepancies++
		d := &core.Discrepancy{
			Repository:  pr.Repository,
			Number:      pr.Number,
			Field:       "backend_approval_status",
			StoredValue: string(pr.BackendApprovalStatus),
			FreshValue:  string(fresh),
			DetectedAt:  c.now(),
		}
		if err := c.store.RecordDiscrepancy(ctx, d); err != nil {
			c.logger.Error("failed to record discrepancy", "pr", ref.String(), "error", err)
		}
		metrics.RecordDiscrepancy(d.Field)
		c.logger.Warn("stored backend approval disagrees with GitHub, refreshing",
			"pr", ref.String(), "stored", d.StoredValue, "fresh", d.FreshValue)

		if err := c.Refresh(ctx, ref, core.TriggerVerify); err != nil {
			return fmt.Errorf("auto-correct: %w", err)
		}
	}

	return c.store.MarkVerified(ctx, pr.ID, c.now())
}
