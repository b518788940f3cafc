package approval

import (
	"time"

	"github.com/sevigo/pr-tracker/internal/core"
)

// Input is the raw data of one pull request at classification time.
type Input struct {
	Author string
	State  core.PRState
	Draft  bool

	TotalChecks  int
	FailedChecks int
	// FailingChecks is the failing-check snapshot; nil when it could not be loaded.
	FailingChecks *[]core.CheckResult

	Reviews  []core.Review
	Comments []core.Comment
	// Commits is the PR commit history; nil when the lookup failed.
	Commits *[]core.Commit

	Group core.ReviewerGroup
	Rules *core.GateRules
}

// Classify derives the full state bundle of a pull request. prior is the state
// persisted by the previous run and is only used to carry transition timestamps.
func Classify(in Input, prior core.DerivedState, now time.Time) core.DerivedState {
	latest := LatestActionable(in.Reviews)
	backend := BackendApproval(latest, in.Group)

	ready := ReadyForBackendReview(in.FailingChecks, in.FailedChecks, latest, in.Group, in.Rules)
	fully := FullyApproved(FullApprovalInput{
		State:         in.State,
		Draft:         in.Draft,
		TotalChecks:   in.TotalChecks,
		FailedChecks:  in.FailedChecks,
		BackendStatus: backend,
		FailingDetail: in.FailingChecks,
	})

	narrative := BuildNarrative(NarrativeInput{
		PRAuthor:      in.Author,
		Latest:        latest,
		History:       in.Reviews,
		Comments:      in.Comments,
		Commits:       in.Commits,
		Group:         in.Group,
		BackendStatus: backend,
	})

	return core.DerivedState{
		BackendApprovalStatus:   backend,
		ReadyForBackendReview:   ready,
		ReadyForBackendReviewAt: TrackTransition(prior.ReadyForBackendReview, prior.ReadyForBackendReviewAt, ready, now),
		FullyApproved:           fully,
		ApprovedAt:              TrackTransition(prior.FullyApproved, prior.ApprovedAt, fully, now),
		AwaitingAuthorChanges:   narrative.Kind == core.NarrativeChangesRequested,
		Narrative:               narrative,
	}
}
