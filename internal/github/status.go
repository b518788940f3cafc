package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-tracker/internal/core"
)

// StatusUpdater publishes the backend approval gate as a check run on the PR head.
type StatusUpdater interface {
	PublishApprovalCheck(ctx context.Context, pr *core.PullRequest) error
}

type statusUpdater struct {
	client    Client
	checkName string
	now       func() time.Time
}

// NewStatusUpdater creates a StatusUpdater that writes a check run named checkName.
func NewStatusUpdater(client Client, checkName string) StatusUpdater {
	if checkName == "" {
		checkName = core.DefaultApprovalCheckName
	}
	return &statusUpdater{client: client, checkName: checkName, now: time.Now}
}

// PublishApprovalCheck creates or updates the gate check run: success when the backend
// group approved, failure otherwise.
func (s *statusUpdater) PublishApprovalCheck(ctx context.Context, pr *core.PullRequest) error {
	if pr.HeadSHA == "" {
		return fmt.Errorf("pull request %s has no head sha", pr.Ref())
	}
	ref := pr.Ref()

	conclusion := "failure"
	title := "Waiting for backend review group approval"
	if pr.BackendApprovalStatus == core.BackendApproved {
		conclusion = "success"
		title = "Approved by the backend review group"
	}
	output := &github.CheckRunOutput{
		Title:   github.Ptr(title),
		Summary: github.Ptr(formatApprovalSummary(pr)),
	}
	completedAt := &github.Timestamp{Time: s.now()}

	existing, err := s.client.ListCheckRuns(ctx, ref.Owner, ref.Repo, pr.HeadSHA, s.checkName)
	if err != nil {
		return fmt.Errorf("failed to look up check run: %w", err)
	}
	if len(existing) > 0 {
		if existing[0].GetConclusion() == conclusion && existing[0].GetOutput().GetSummary() == output.GetSummary() {
			return nil
		}
		_, err = s.client.UpdateCheckRun(ctx, ref.Owner, ref.Repo, existing[0].GetID(), github.UpdateCheckRunOptions{
			Name:        s.checkName,
			Status:      github.Ptr("completed"),
			Conclusion:  github.Ptr(conclusion),
			CompletedAt: completedAt,
			Output:      output,
		})
		return err
	}

	_, err = s.client.CreateCheckRun(ctx, ref.Owner, ref.Repo, github.CreateCheckRunOptions{
		Name:        s.checkName,
		HeadSHA:     pr.HeadSHA,
		Status:      github.Ptr("completed"),
		Conclusion:  github.Ptr(conclusion),
		CompletedAt: completedAt,
		Output:      output,
	})
	if err != nil {
		return fmt.Errorf("failed to create check run: %w", err)
	}
	return nil
}

// formatApprovalSummary renders the check run body shown on the PR.
func formatApprovalSummary(pr *core.PullRequest) string {
	var sb strings.Builder

	if pr.BackendApprovalStatus == core.BackendApproved {
		sb.WriteString("### ✅ Backend approval\n\n")
		sb.WriteString("A member of the backend review group approved this pull request.\n")
	} else {
		sb.WriteString("### ⏳ Backend approval\n\n")
		sb.WriteString("No member of the backend review group has approved this pull request yet.\n")
	}

	sb.WriteString("\n| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Ready for backend review | %s |\n", yesNo(pr.ReadyForBackendReview))
	fmt.Fprintf(&sb, "| Fully approved | %s |\n", yesNo(pr.FullyApproved))
	fmt.Fprintf(&sb, "| Checks | %d passed, %d failed of %d |\n", pr.SuccessfulChecks, pr.FailedChecks, pr.TotalChecks)

	if pr.Narrative.Kind != "" && pr.Narrative.Kind != core.NarrativeNone {
		fmt.Fprintf(&sb, "\n> [!NOTE]\n> %s\n", narrativeHeadline(pr.Narrative))
	}
	return sb.String()
}

func narrativeHeadline(n core.Narrative) string {
	var headline string
	switch n.Kind {
	case core.NarrativeNewCommitsAfterApproval:
		headline = "New commits were pushed after the backend approval."
	case core.NarrativeNewCommitFromAuthor:
		headline = "The author pushed new commits after review feedback."
	case core.NarrativeChangesRequested:
		headline = "Waiting for the author to address requested changes."
	case core.NarrativeNewCommentFromAuthor:
		headline = "The author replied to review feedback."
	default:
		return n.Detail
	}
	if n.Detail != "" {
		headline += " " + n.Detail
	}
	return headline
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
