package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/pr-tracker/internal/cache"
	"github.com/sevigo/pr-tracker/internal/core"
	"github.com/sevigo/pr-tracker/internal/github"
	"github.com/sevigo/pr-tracker/internal/storage"
	"github.com/sevigo/pr-tracker/mocks"
)

const (
	testRepo  = "acme/api"
	gateCheck = core.DefaultApprovalCheckName
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakePublisher struct {
	mu        sync.Mutex
	published []core.PullRequest
}

func (p *fakePublisher) PublishApprovalCheck(_ context.Context, pr *core.PullRequest) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, *pr)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

// remotePR is what GitHub currently reports for one pull request.
type remotePR struct {
	pr         core.PullRequest
	reviews    []core.Review
	checks     []core.CheckResult
	comments   []core.Comment
	commits    []core.Commit
	reviewsErr error
	commitsErr error
}

// remote is a mutable view of GitHub served through the gomock fetcher.
type remote struct {
	mu      sync.Mutex
	prs     map[core.PRRef]*remotePR
	team    []string
	prCalls int
}

func (r *remote) get(ref core.PRRef) (*remotePR, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prs[ref]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", ref, github.ErrNotFound)
	}
	return p, nil
}

func (r *remote) put(p *remotePR) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prs[p.pr.Ref()] = p
}

func (r *remote) drop(ref core.PRRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.prs, ref)
}

func (r *remote) setTeam(members ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.team = members
}

func (r *remote) pullRequestCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prCalls
}

type harness struct {
	ctrl      *Controller
	store     *fakeStore
	remote    *remote
	cache     *cache.MemoryCache
	publisher *fakePublisher
	clock     *fakeClock
	fetcher   *mocks.MockFetcher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mc := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(mc)

	h := &harness{
		store:     newFakeStore(),
		remote:    &remote{prs: map[core.PRRef]*remotePR{}, team: []string{"alice"}},
		cache:     cache.NewMemoryCache(0),
		publisher: &fakePublisher{},
		clock:     &fakeClock{now: t0},
		fetcher:   fetcher,
	}
	wireFetcher(fetcher, h.remote)

	h.ctrl = h.controllerWith(h.store, "test-worker")
	return h
}

// controllerWith builds another controller over store that shares GitHub, the cache,
// the publisher and the clock with h. It stands in for a second replica.
func (h *harness) controllerWith(store storage.Store, holder string) *Controller {
	tx := &mocks.MockTxManager{}
	tx.Passthrough()

	return NewController(store, tx, h.fetcher, h.cache, h.publisher, nil, Config{
		Org:          "acme",
		ReviewerTeam: "backend-review-group",
		Repositories: []string{testRepo},
		Holder:       holder,
		Now:          h.clock.Now,
	}, slog.New(slog.DiscardHandler))
}

func wireFetcher(f *mocks.MockFetcher, r *remote) {
	f.EXPECT().PullRequest(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ref core.PRRef) (*core.PullRequest, error) {
			r.mu.Lock()
			r.prCalls++
			r.mu.Unlock()
			p, err := r.get(ref)
			if err != nil {
				return nil, err
			}
			pr := p.pr
			pr.Labels = slices.Clone(p.pr.Labels)
			return &pr, nil
		}).AnyTimes()
	f.EXPECT().Reviews(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ref core.PRRef) ([]core.Review, error) {
			p, err := r.get(ref)
			if err != nil {
				return nil, err
			}
			if p.reviewsErr != nil {
				return nil, p.reviewsErr
			}
			return slices.Clone(p.reviews), nil
		}).AnyTimes()
	f.EXPECT().Checks(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ref core.PRRef, _, _ string) ([]core.CheckResult, error) {
			p, err := r.get(ref)
			if err != nil {
				return nil, err
			}
			return slices.Clone(p.checks), nil
		}).AnyTimes()
	f.EXPECT().Comments(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ref core.PRRef) ([]core.Comment, error) {
			p, err := r.get(ref)
			if err != nil {
				return nil, err
			}
			return slices.Clone(p.comments), nil
		}).AnyTimes()
	f.EXPECT().Commits(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ref core.PRRef) ([]core.Commit, error) {
			p, err := r.get(ref)
			if err != nil {
				return nil, err
			}
			if p.commitsErr != nil {
				return nil, p.commitsErr
			}
			return slices.Clone(p.commits), nil
		}).AnyTimes()
	f.EXPECT().OpenPullRequests(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, owner, repo string) ([]*core.PullRequest, error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			var out []*core.PullRequest
			for _, p := range r.prs {
				if p.pr.Repository == owner+"/"+repo && p.pr.IsOpen() {
					pr := p.pr
					out = append(out, &pr)
				}
			}
			slices.SortFunc(out, func(a, b *core.PullRequest) int { return a.Number - b.Number })
			return out, nil
		}).AnyTimes()
	f.EXPECT().TeamMembers(gomock.Any(), "acme", "backend-review-group").DoAndReturn(
		func(context.Context, string, string) ([]string, error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			return slices.Clone(r.team), nil
		}).AnyTimes()
}

// approvedPR is open, approved by alice (backend) and bob, with only the gate check failing.
func approvedPR(number int) *remotePR {
	return &remotePR{
		pr: core.PullRequest{
			GitHubID:   int64(1000 + number),
			Repository: testRepo,
			Number:     number,
			Title:      fmt.Sprintf("Change %d", number),
			Author:     "dave",
			State:      core.PRStateOpen,
			HeadSHA:    fmt.Sprintf("sha-%d", number),
			BaseBranch: "main",
			CreatedAt:  t0.Add(-4 * time.Hour),
		},
		reviews: []core.Review{
			{ID: 1, Author: "bob", State: core.ReviewApproved, SubmittedAt: t0.Add(-2 * time.Hour)},
			{ID: 2, Author: "alice", State: core.ReviewApproved, SubmittedAt: t0.Add(-time.Hour)},
		},
		checks: []core.CheckResult{
			{Name: "build", Status: core.CheckSuccess, SuiteName: "build"},
			{Name: gateCheck, Status: core.CheckFailure, SuiteName: gateCheck},
		},
		commits: []core.Commit{
			{SHA: "c1", AuthorLogin: "dave", CommittedAt: t0.Add(-3 * time.Hour)},
		},
	}
}

func ref(number int) core.PRRef {
	return core.PRRef{Owner: "acme", Repo: "api", Number: number}
}

func (h *harness) stored(t *testing.T, number int) *core.PullRequest {
	t.Helper()
	pr := h.store.byRef(testRepo, number)
	require.NotNil(t, pr, "pull request #%d is not stored", number)
	return pr
}
