package reconcile

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/sevigo/pr-tracker/internal/core"
	"github.com/sevigo/pr-tracker/internal/storage"
)

// fakeStore is an in-memory storage.Store.
type fakeStore struct {
	mu            sync.Mutex
	nextID        int64
	prs           map[int64]*core.PullRequest
	reviews       map[int64][]core.Review
	checks        map[int64][]core.CheckResult
	comments      map[int64][]core.Comment
	commits       map[int64][]core.Commit
	groups        []core.ReviewerGroup
	leases        map[string]string
	discrepancies []core.Discrepancy
	released      []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		prs:      map[int64]*core.PullRequest{},
		reviews:  map[int64][]core.Review{},
		checks:   map[int64][]core.CheckResult{},
		comments: map[int64][]core.Comment{},
		commits:  map[int64][]core.Commit{},
		leases:   map[string]string{},
	}
}

var _ storage.Store = (*fakeStore)(nil)

func (s *fakeStore) find(repo string, number int) *core.PullRequest {
	for _, pr := range s.prs {
		if pr.Repository == repo && pr.Number == number {
			return pr
		}
	}
	return nil
}

func copyPR(pr *core.PullRequest) *core.PullRequest {
	cp := *pr
	cp.Labels = slices.Clone(pr.Labels)
	return &cp
}

// seed stores pr as-is and returns its id.
func (s *fakeStore) seed(pr *core.PullRequest) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	cp := copyPR(pr)
	cp.ID = s.nextID
	s.prs[cp.ID] = cp
	return cp.ID
}

func (s *fakeStore) byRef(repo string, number int) *core.PullRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pr := s.find(repo, number); pr != nil {
		return copyPR(pr)
	}
	return nil
}

func (s *fakeStore) UpsertPullRequest(_ context.Context, pr *core.PullRequest) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.find(pr.Repository, pr.Number)
	if existing == nil {
		s.nextID++
		cp := copyPR(pr)
		cp.ID = s.nextID
		cp.DerivedState = core.DerivedState{BackendApprovalStatus: core.BackendNotApproved, Narrative: core.Narrative{Kind: core.NarrativeNone}}
		s.prs[cp.ID] = cp
		return cp.ID, nil
	}
	if existing.FetchedAt.After(pr.FetchedAt) {
		return 0, storage.ErrStale
	}
	derived, version, verified := existing.DerivedState, existing.ReviewerGroupVersion, existing.VerifiedAt
	cp := copyPR(pr)
	cp.ID = existing.ID
	cp.DerivedState = derived
	cp.ReviewerGroupVersion = version
	cp.VerifiedAt = verified
	s.prs[cp.ID] = cp
	return cp.ID, nil
}

func (s *fakeStore) GetPullRequest(_ context.Context, repo string, number int) (*core.PullRequest, error) {
	if pr := s.byRef(repo, number); pr != nil {
		return pr, nil
	}
	return nil, storage.ErrNotFound
}

func (s *fakeStore) GetPullRequestByID(_ context.Context, id int64) (*core.PullRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pr, ok := s.prs[id]; ok {
		return copyPR(pr), nil
	}
	return nil, storage.ErrNotFound
}

func (s *fakeStore) LockPullRequest(ctx context.Context, repo string, number int) (*core.PullRequest, error) {
	return s.GetPullRequest(ctx, repo, number)
}

func (s *fakeStore) list(filter func(*core.PullRequest) bool, limit int) []*core.PullRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*core.PullRequest
	for _, pr := range s.prs {
		if filter(pr) {
			out = append(out, copyPR(pr))
		}
	}
	slices.SortFunc(out, func(a, b *core.PullRequest) int { return int(a.ID - b.ID) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *fakeStore) ListOpenPullRequests(_ context.Context, f storage.ListFilter) ([]*core.PullRequest, error) {
	return s.list(func(pr *core.PullRequest) bool {
		return pr.IsOpen() && (f.Repository == "" || pr.Repository == f.Repository)
	}, f.Limit), nil
}

func (s *fakeStore) FindOpenPullRequestsBySHA(_ context.Context, repo, sha string) ([]*core.PullRequest, error) {
	return s.list(func(pr *core.PullRequest) bool {
		return pr.IsOpen() && pr.Repository == repo && pr.HeadSHA == sha
	}, 0), nil
}

func (s *fakeStore) SampleForVerification(_ context.Context, limit int) ([]*core.PullRequest, error) {
	return s.list(func(pr *core.PullRequest) bool { return pr.IsOpen() }, limit), nil
}

func (s *fakeStore) DeletePullRequest(_ context.Context, repo string, number int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pr := s.find(repo, number)
	if pr == nil {
		return storage.ErrNotFound
	}
	delete(s.prs, pr.ID)
	delete(s.reviews, pr.ID)
	delete(s.checks, pr.ID)
	delete(s.comments, pr.ID)
	delete(s.commits, pr.ID)
	return nil
}

func (s *fakeStore) ReplaceReviews(_ context.Context, prID int64, reviews []core.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[prID] = slices.Clone(reviews)
	return nil
}

func (s *fakeStore) ListReviews(_ context.Context, prID int64) ([]core.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.reviews[prID]), nil
}

func (s *fakeStore) ReplaceChecks(_ context.Context, prID int64, checks []core.CheckResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks[prID] = slices.Clone(checks)
	return nil
}

func (s *fakeStore) ListChecks(_ context.Context, prID int64) ([]core.CheckResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.checks[prID]), nil
}

func (s *fakeStore) ReplaceComments(_ context.Context, prID int64, comments []core.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[prID] = slices.Clone(comments)
	return nil
}

func (s *fakeStore) ListComments(_ context.Context, prID int64) ([]core.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.comments[prID]), nil
}

func (s *fakeStore) ReplaceCommits(_ context.Context, prID int64, commits []core.Commit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commits[prID] = slices.Clone(commits)
	return nil
}

func (s *fakeStore) ListCommits(_ context.Context, prID int64) ([]core.Commit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.commits[prID]), nil
}

func (s *fakeStore) SaveDerivedState(_ context.Context, prID int64, state core.DerivedState, groupVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pr, ok := s.prs[prID]
	if !ok {
		return storage.ErrNotFound
	}
	pr.DerivedState = state
	pr.ReviewerGroupVersion = groupVersion
	return nil
}

func (s *fakeStore) MarkVerified(_ context.Context, prID int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pr, ok := s.prs[prID]; ok {
		pr.VerifiedAt = &at
	}
	return nil
}

func (s *fakeStore) AcquireLease(_ context.Context, name, holder string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.leases[name]; ok && current != holder {
		return false, nil
	}
	s.leases[name] = holder
	return true, nil
}

func (s *fakeStore) ReleaseLease(_ context.Context, name, holder string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.leases[name] == holder {
		delete(s.leases, name)
		s.released = append(s.released, name)
	}
	return nil
}

func (s *fakeStore) LatestReviewerGroup(_ context.Context) (core.ReviewerGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.groups) == 0 {
		return core.ReviewerGroup{}, storage.ErrNotFound
	}
	return s.groups[len(s.groups)-1], nil
}

func (s *fakeStore) SaveReviewerGroup(_ context.Context, _ string, members []string) (core.ReviewerGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := core.NewReviewerGroup(int64(len(s.groups)+1), members)
	s.groups = append(s.groups, g)
	return g, nil
}

func (s *fakeStore) RecordDiscrepancy(_ context.Context, d *core.Discrepancy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = int64(len(s.discrepancies) + 1)
	s.discrepancies = append(s.discrepancies, *d)
	return nil
}

func (s *fakeStore) ListDiscrepancies(_ context.Context, _ int) ([]core.Discrepancy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.discrepancies), nil
}
