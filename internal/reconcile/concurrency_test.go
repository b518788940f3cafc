package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-tracker/internal/core"
	"github.com/sevigo/pr-tracker/internal/storage"
)

// gatedStore holds the first LockPullRequest call until open is called.
type gatedStore struct {
	*fakeStore
	once      sync.Once
	entered   chan struct{}
	release   chan struct{}
	closeOnce sync.Once
}

var _ storage.Store = (*gatedStore)(nil)

func newGatedStore(s *fakeStore) *gatedStore {
	return &gatedStore{
		fakeStore: s,
		entered:   make(chan struct{}),
		release:   make(chan struct{}),
	}
}

func (g *gatedStore) LockPullRequest(ctx context.Context, repo string, number int) (*core.PullRequest, error) {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		select {
		case <-g.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return g.fakeStore.LockPullRequest(ctx, repo, number)
}

func (g *gatedStore) open() {
	g.closeOnce.Do(func() { close(g.release) })
}

// waitEntered blocks until a caller is parked on the gate.
func (g *gatedStore) waitEntered(t *testing.T) {
	t.Helper()
	select {
	case <-g.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("nobody reached LockPullRequest")
	}
}

// brokenChecksStore fails every stored check read.
type brokenChecksStore struct {
	*fakeStore
}

func (s *brokenChecksStore) ListChecks(context.Context, int64) ([]core.CheckResult, error) {
	return nil, errors.New("connection reset by peer")
}

func TestRefresh_ReviewerSyncWhileWaitingForRowLock(t *testing.T) {
	h := newHarness(t)
	h.remote.put(approvedPR(7))
	require.NoError(t, h.ctrl.Refresh(t.Context(), ref(7), core.TriggerWebhook))
	require.Equal(t, core.BackendApproved, h.stored(t, 7).BackendApprovalStatus)

	gated := newGatedStore(h.store)
	t.Cleanup(gated.open)
	replica := h.controllerWith(gated, "replica-a")

	h.clock.Advance(time.Minute)
	done := make(chan error, 1)
	go func() { done <- replica.Refresh(t.Context(), ref(7), core.TriggerPoll) }()
	gated.waitEntered(t)

	// alice leaves the group while the replica holds a snapshot fetched under version 1.
	h.remote.setTeam("carol")
	changed, err := h.ctrl.SyncReviewerGroup(t.Context())
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, core.BackendNotApproved, h.stored(t, 7).BackendApprovalStatus)

	gated.open()
	require.NoError(t, <-done)

	pr := h.stored(t, 7)
	assert.Equal(t, core.BackendNotApproved, pr.BackendApprovalStatus, "removed member's approval must not count")
	assert.False(t, pr.FullyApproved)
	assert.Nil(t, pr.ApprovedAt)
	assert.Equal(t, int64(2), pr.ReviewerGroupVersion)
	assert.Equal(t, t0.Add(time.Minute), pr.FetchedAt)
}

func TestRefresh_SameProcessCallsAreSerialised(t *testing.T) {
	h := newHarness(t)
	h.remote.put(approvedPR(7))
	require.NoError(t, h.ctrl.Refresh(t.Context(), ref(7), core.TriggerWebhook))
	id := h.stored(t, 7).ID

	gated := newGatedStore(h.store)
	t.Cleanup(gated.open)
	ctrl := h.controllerWith(gated, "test-worker")

	h.clock.Advance(time.Minute)
	errs := make(chan error, 3)
	go func() { errs <- ctrl.Refresh(t.Context(), ref(7), core.TriggerWebhook) }()
	gated.waitEntered(t)
	calls := h.remote.pullRequestCalls()

	go func() { errs <- ctrl.Refresh(t.Context(), ref(7), core.TriggerPoll) }()
	go func() { errs <- ctrl.Reclassify(t.Context(), id) }()

	assert.Never(t, func() bool { return h.remote.pullRequestCalls() > calls },
		100*time.Millisecond, 10*time.Millisecond, "second refresh must wait for the first to commit")

	gated.open()
	for range 3 {
		require.NoError(t, <-errs)
	}
	assert.Equal(t, calls+1, h.remote.pullRequestCalls())

	pr := h.stored(t, 7)
	require.NotNil(t, pr.ReadyForBackendReviewAt)
	assert.Equal(t, t0, *pr.ReadyForBackendReviewAt)
	require.NotNil(t, pr.ApprovedAt)
	assert.Equal(t, t0, *pr.ApprovedAt)
	assert.Equal(t, 1, h.publisher.count())
}

func TestRefresh_StaleSnapshotFromOtherReplicaIsDropped(t *testing.T) {
	h := newHarness(t)
	h.remote.put(approvedPR(7))
	require.NoError(t, h.ctrl.Refresh(t.Context(), ref(7), core.TriggerWebhook))

	gated := newGatedStore(h.store)
	t.Cleanup(gated.open)
	replica := h.controllerWith(gated, "replica-a")

	h.clock.Advance(time.Minute)
	done := make(chan error, 1)
	go func() { done <- replica.Refresh(t.Context(), ref(7), core.TriggerPoll) }()
	gated.waitEntered(t)

	// alice asks for changes; this process sees it first and commits a newer fetch.
	changed := approvedPR(7)
	changed.reviews = append(changed.reviews, core.Review{
		ID: 3, Author: "alice", State: core.ReviewChangesRequested, SubmittedAt: t0.Add(90 * time.Second),
	})
	h.remote.put(changed)
	h.clock.Advance(time.Minute)
	require.NoError(t, h.ctrl.Refresh(t.Context(), ref(7), core.TriggerWebhook))

	gated.open()
	require.NoError(t, <-done, "a stale write is dropped, not failed")

	pr := h.stored(t, 7)
	assert.Equal(t, t0.Add(2*time.Minute), pr.FetchedAt)
	reviews, err := h.store.ListReviews(t.Context(), pr.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, changed.reviews, reviews)

	assert.Equal(t, core.BackendNotApproved, pr.BackendApprovalStatus)
	assert.False(t, pr.FullyApproved)
	assert.Nil(t, pr.ApprovedAt)
	assert.True(t, pr.AwaitingAuthorChanges)
	assert.Equal(t, core.NarrativeChangesRequested, pr.Narrative.Kind)
	assert.True(t, pr.ReadyForBackendReview)
	require.NotNil(t, pr.ReadyForBackendReviewAt)
	assert.Equal(t, t0, *pr.ReadyForBackendReviewAt, "readiness held throughout and keeps its first stamp")
}

func TestController_ConcurrentRefreshAndReclassify(t *testing.T) {
	h := newHarness(t)
	p := approvedPR(7)
	h.remote.put(p)
	require.NoError(t, h.ctrl.Refresh(t.Context(), ref(7), core.TriggerWebhook))
	id := h.stored(t, 7).ID
	h.clock.Advance(time.Minute)

	const workers = 8
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Go(func() {
			if i%2 == 0 {
				errs <- h.ctrl.Refresh(t.Context(), ref(7), core.TriggerPoll)
				return
			}
			errs <- h.ctrl.Reclassify(t.Context(), id)
		})
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	pr := h.stored(t, 7)
	reviews, err := h.store.ListReviews(t.Context(), pr.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, p.reviews, reviews)
	assert.Equal(t, core.BackendApproved, pr.BackendApprovalStatus)
	require.NotNil(t, pr.ReadyForBackendReviewAt)
	assert.Equal(t, t0, *pr.ReadyForBackendReviewAt)
	require.NotNil(t, pr.ApprovedAt)
	assert.Equal(t, t0, *pr.ApprovedAt)
	assert.Equal(t, 1, h.publisher.count())
}

func TestReclassify_StoredChecksUnreadable(t *testing.T) {
	h := newHarness(t)
	h.remote.put(approvedPR(7))
	require.NoError(t, h.ctrl.Refresh(t.Context(), ref(7), core.TriggerWebhook))
	before := h.stored(t, 7)
	require.NoError(t, h.cache.Delete(ref(7)))

	ctrl := h.controllerWith(&brokenChecksStore{fakeStore: h.store}, "test-worker")
	h.clock.Advance(time.Minute)
	err := ctrl.Reclassify(t.Context(), before.ID)

	require.Error(t, err)
	assert.ErrorContains(t, err, "load stored checks")
	assert.Equal(t, before.DerivedState, h.stored(t, 7).DerivedState)
	assert.Equal(t, 1, h.publisher.count())
}
