package reconcile

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-tracker/internal/core"
)

func TestRefresh_NewPullRequest(t *testing.T) {
	h := newHarness(t)
	h.remote.put(approvedPR(7))

	require.NoError(t, h.ctrl.Refresh(t.Context(), ref(7), core.TriggerWebhook))

	pr := h.stored(t, 7)
	assert.Equal(t, "Change 7", pr.Title)
	assert.Equal(t, t0, pr.FetchedAt)
	assert.Equal(t, 2, pr.TotalChecks)
	assert.Equal(t, 1, pr.SuccessfulChecks)
	assert.Equal(t, 1, pr.FailedChecks)

	assert.Equal(t, core.BackendApproved, pr.BackendApprovalStatus)
	assert.True(t, pr.ReadyForBackendReview)
	require.NotNil(t, pr.ReadyForBackendReviewAt)
	assert.Equal(t, t0, *pr.ReadyForBackendReviewAt)
	assert.True(t, pr.FullyApproved)
	require.NotNil(t, pr.ApprovedAt)
	assert.False(t, pr.AwaitingAuthorChanges)
	assert.Equal(t, core.NarrativeNone, pr.Narrative.Kind)
	assert.Equal(t, int64(1), pr.ReviewerGroupVersion, "group is bootstrapped on first use")

	reviews, _ := h.store.ListReviews(t.Context(), pr.ID)
	assert.Len(t, reviews, 2)
	commits, _ := h.store.ListCommits(t.Context(), pr.ID)
	assert.Len(t, commits, 1)

	failing, ok, err := h.cache.Get(ref(7))
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, failing, 1)
	assert.Equal(t, gateCheck, failing[0].Name)

	assert.Equal(t, 1, h.publisher.count())
}

func TestRefresh_IdempotentDoesNotRestamp(t *testing.T) {
	h := newHarness(t)
	h.remote.put(approvedPR(7))

	require.NoError(t, h.ctrl.Refresh(t.Context(), ref(7), core.TriggerWebhook))
	first := h.stored(t, 7)

	h.clock.Advance(time.Hour)
	require.NoError(t, h.ctrl.Refresh(t.Context(), ref(7), core.TriggerPoll))
	second := h.stored(t, 7)

	assert.Equal(t, first.DerivedState, second.DerivedState)
	assert.Equal(t, t0.Add(time.Hour), second.FetchedAt)
	assert.Equal(t, 1, h.publisher.count(), "unchanged state is not republished")
}

func TestRefresh_ReadinessClearsWhenApprovalWithdrawn(t *testing.T) {
	h := newHarness(t)
	p := approvedPR(7)
	h.remote.put(p)
	require.NoError(t, h.ctrl.Refresh(t.Context(), ref(7), core.TriggerWebhook))

	p.reviews = append(p.reviews, core.Review{ID: 3, Author: "bob", State: core.ReviewChangesRequested, SubmittedAt: t0})
	h.clock.Advance(time.Minute)
	require.NoError(t, h.ctrl.Refresh(t.Context(), ref(7), core.TriggerWebhook))

	pr := h.stored(t, 7)
	assert.False(t, pr.ReadyForBackendReview)
	assert.Nil(t, pr.ReadyForBackendReviewAt)
	assert.Equal(t, core.BackendApproved, pr.BackendApprovalStatus)
	assert.Equal(t, 2, h.publisher.count())
}

func TestRefresh_DeletesPullRequestGoneFromGitHub(t *testing.T) {
	h := newHarness(t)
	h.remote.put(approvedPR(7))
	require.NoError(t, h.ctrl.Refresh(t.Context(), ref(7), core.TriggerWebhook))
	id := h.stored(t, 7).ID

	h.remote.drop(ref(7))
	require.NoError(t, h.ctrl.Refresh(t.Context(), ref(7), core.TriggerWebhook))

	assert.Nil(t, h.store.byRef(testRepo, 7))
	reviews, _ := h.store.ListReviews(t.Context(), id)
	assert.Empty(t, reviews)
	_, ok, _ := h.cache.Get(ref(7))
	assert.False(t, ok)
}

func TestRefresh_UnknownPullRequestGoneIsNoop(t *testing.T) {
	h := newHarness(t)
	assert.NoError(t, h.ctrl.Refresh(t.Context(), ref(99), core.TriggerWebhook))
}

func TestRefresh_DropsStaleFetch(t *testing.T) {
	h := newHarness(t)
	h.store.seed(&core.PullRequest{
		Repository: testRepo,
		Number:     7,
		Title:      "newer title",
		State:      core.PRStateOpen,
		FetchedAt:  t0.Add(time.Hour),
	})
	h.remote.put(approvedPR(7))

	require.NoError(t, h.ctrl.Refresh(t.Context(), ref(7), core.TriggerPoll))

	pr := h.stored(t, 7)
	assert.Equal(t, "newer title", pr.Title)
	assert.Equal(t, t0.Add(time.Hour), pr.FetchedAt)
	assert.Zero(t, h.publisher.count())
}

func TestRefresh_CommitLookupFailureKeepsStoredHistory(t *testing.T) {
	h := newHarness(t)
	p := approvedPR(7)
	p.commits = append(p.commits, core.Commit{SHA: "c2", AuthorLogin: "dave", CommittedAt: t0.Add(-30 * time.Minute)})
	h.remote.put(p)

	require.NoError(t, h.ctrl.Refresh(t.Context(), ref(7), core.TriggerWebhook))
	assert.Equal(t, core.NarrativeNewCommitsAfterApproval, h.stored(t, 7).Narrative.Kind)

	p.commitsErr = errors.New("boom")
	h.clock.Advance(time.Minute)
	require.NoError(t, h.ctrl.Refresh(t.Context(), ref(7), core.TriggerWebhook))

	pr := h.stored(t, 7)
	assert.Equal(t, core.NarrativeNone, pr.Narrative.Kind, "unavailable history means no new commits")
	commits, _ := h.store.ListCommits(t.Context(), pr.ID)
	assert.Len(t, commits, 2)
}

func TestRefresh_ReviewFetchErrorStoresNothing(t *testing.T) {
	h := newHarness(t)
	p := approvedPR(7)
	p.reviewsErr = errors.New("connection reset")
	h.remote.put(p)

	err := h.ctrl.Refresh(t.Context(), ref(7), core.TriggerWebhook)
	require.Error(t, err)
	assert.Nil(t, h.store.byRef(testRepo, 7))
	assert.Zero(t, h.publisher.count())
}

func TestRefresh_ClosedPullRequestIsNotPublished(t *testing.T) {
	h := newHarness(t)
	p := approvedPR(7)
	p.pr.State = core.PRStateMerged
	h.remote.put(p)

	require.NoError(t, h.ctrl.Refresh(t.Context(), ref(7), core.TriggerWebhook))

	pr := h.stored(t, 7)
	assert.Equal(t, core.PRStateMerged, pr.State)
	assert.False(t, pr.FullyApproved)
	assert.Zero(t, h.publisher.count())
}
