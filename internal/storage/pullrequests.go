package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/sevigo/pr-tracker/internal/core"
)

type pullRequestRow struct {
	ID                      int64          `db:"id"`
	GitHubID                int64          `db:"github_id"`
	Repository              string         `db:"repository"`
	Number                  int            `db:"number"`
	Title                   string         `db:"title"`
	Author                  string         `db:"author"`
	State                   string         `db:"state"`
	Draft                   bool           `db:"draft"`
	Labels                  pq.StringArray `db:"labels"`
	HeadSHA                 string         `db:"head_sha"`
	BaseBranch              string         `db:"base_branch"`
	CreatedAt               time.Time      `db:"created_at"`
	TotalChecks             int            `db:"total_checks"`
	SuccessfulChecks        int            `db:"successful_checks"`
	FailedChecks            int            `db:"failed_checks"`
	BackendApprovalStatus   string         `db:"backend_approval_status"`
	ReadyForBackendReview   bool           `db:"ready_for_backend_review"`
	ReadyForBackendReviewAt *time.Time     `db:"ready_for_backend_review_at"`
	FullyApproved           bool           `db:"fully_approved"`
	ApprovedAt              *time.Time     `db:"approved_at"`
	AwaitingAuthorChanges   bool           `db:"awaiting_author_changes"`
	NarrativeKind           string         `db:"narrative_kind"`
	NarrativeDetail         string         `db:"narrative_detail"`
	ReviewerGroupVersion    int64          `db:"reviewer_group_version"`
	FetchedAt               time.Time      `db:"fetched_at"`
	VerifiedAt              *time.Time     `db:"verified_at"`
	UpdatedAt               time.Time      `db:"updated_at"`
}

const pullRequestColumns = `id, github_id, repository, number, title, author, state, draft, labels, head_sha, base_branch, created_at,
	total_checks, successful_checks, failed_checks,
	backend_approval_status, ready_for_backend_review, ready_for_backend_review_at, fully_approved, approved_at,
	awaiting_author_changes, narrative_kind, narrative_detail,
	reviewer_group_version, fetched_at, verified_at, updated_at`

func (r *pullRequestRow) toCore() *core.PullRequest {
	return &core.PullRequest{
		ID:               r.ID,
		GitHubID:         r.GitHubID,
		Repository:       r.Repository,
		Number:           r.Number,
		Title:            r.Title,
		Author:           r.Author,
		State:            core.PRState(r.State),
		Draft:            r.Draft,
		Labels:           []string(r.Labels),
		HeadSHA:          r.HeadSHA,
		BaseBranch:       r.BaseBranch,
		CreatedAt:        r.CreatedAt,
		TotalChecks:      r.TotalChecks,
		SuccessfulChecks: r.SuccessfulChecks,
		FailedChecks:     r.FailedChecks,
		DerivedState: core.DerivedState{
			BackendApprovalStatus:   core.BackendApprovalStatus(r.BackendApprovalStatus),
			ReadyForBackendReview:   r.ReadyForBackendReview,
			ReadyForBackendReviewAt: r.ReadyForBackendReviewAt,
			FullyApproved:           r.FullyApproved,
			ApprovedAt:              r.ApprovedAt,
			AwaitingAuthorChanges:   r.AwaitingAuthorChanges,
			Narrative: core.Narrative{
				Kind:   core.NarrativeKind(r.NarrativeKind),
				Detail: r.NarrativeDetail,
			},
		},
		ReviewerGroupVersion: r.ReviewerGroupVersion,
		FetchedAt:            r.FetchedAt,
		VerifiedAt:           r.VerifiedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func toCoreList(rows []pullRequestRow) []*core.PullRequest {
	out := make([]*core.PullRequest, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toCore())
	}
	return out
}

func (s *postgresStore) UpsertPullRequest(ctx context.Context, pr *core.PullRequest) (int64, error) {
	query := `
		INSERT INTO pull_requests (github_id, repository, number, title, author, state, draft, labels, head_sha,
			base_branch, created_at, total_checks, successful_checks, failed_checks, fetched_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
		ON CONFLICT (repository, number) DO UPDATE SET
			github_id = EXCLUDED.github_id,
			title = EXCLUDED.title,
			author = EXCLUDED.author,
			state = EXCLUDED.state,
			draft = EXCLUDED.draft,
			labels = EXCLUDED.labels,
			head_sha = EXCLUDED.head_sha,
			base_branch = EXCLUDED.base_branch,
			created_at = EXCLUDED.created_at,
			total_checks = EXCLUDED.total_checks,
			successful_checks = EXCLUDED.successful_checks,
			failed_checks = EXCLUDED.failed_checks,
			fetched_at = EXCLUDED.fetched_at,
			updated_at = NOW()
		WHERE pull_requests.fetched_at <= EXCLUDED.fetched_at
		RETURNING id`

	labels := pr.Labels
	if labels == nil {
		labels = []string{}
	}

	var id int64
	err := s.conn(ctx).QueryRowxContext(ctx, query,
		pr.GitHubID, pr.Repository, pr.Number, pr.Title, pr.Author, string(pr.State), pr.Draft,
		pq.Array(labels), pr.HeadSHA, pr.BaseBranch, pr.CreatedAt, pr.TotalChecks, pr.SuccessfulChecks, pr.FailedChecks,
		pr.FetchedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrStale
		}
		return 0, fmt.Errorf("upsert pull request %s#%d: %w", pr.Repository, pr.Number, err)
	}
	return id, nil
}

func (s *postgresStore) GetPullRequest(ctx context.Context, repo string, number int) (*core.PullRequest, error) {
	query := `SELECT ` + pullRequestColumns + ` FROM pull_requests WHERE repository = $1 AND number = $2`
	return s.getOne(ctx, query, repo, number)
}

func (s *postgresStore) GetPullRequestByID(ctx context.Context, id int64) (*core.PullRequest, error) {
	query := `SELECT ` + pullRequestColumns + ` FROM pull_requests WHERE id = $1`
	return s.getOne(ctx, query, id)
}

func (s *postgresStore) LockPullRequest(ctx context.Context, repo string, number int) (*core.PullRequest, error) {
	query := `SELECT ` + pullRequestColumns + ` FROM pull_requests WHERE repository = $1 AND number = $2 FOR UPDATE`
	return s.getOne(ctx, query, repo, number)
}

func (s *postgresStore) getOne(ctx context.Context, query string, args ...any) (*core.PullRequest, error) {
	var row pullRequestRow
	if err := s.conn(ctx).GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get pull request: %w", err)
	}
	return row.toCore(), nil
}

func (s *postgresStore) ListOpenPullRequests(ctx context.Context, filter ListFilter) ([]*core.PullRequest, error) {
	query := `SELECT ` + pullRequestColumns + ` FROM pull_requests
		WHERE state = 'open'
			AND ($1 = '' OR repository = $1)
			AND ($2::boolean IS NULL OR ready_for_backend_review = $2)
			AND ($3::boolean IS NULL OR fully_approved = $3)
		ORDER BY repository, number`
	args := []any{filter.Repository, filter.Ready, filter.Approved}
	if filter.Limit > 0 {
		query += ` LIMIT $4`
		args = append(args, filter.Limit)
	}

	var rows []pullRequestRow
	if err := s.conn(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list open pull requests: %w", err)
	}
	return toCoreList(rows), nil
}

func (s *postgresStore) FindOpenPullRequestsBySHA(ctx context.Context, repo, sha string) ([]*core.PullRequest, error) {
	query := `SELECT ` + pullRequestColumns + ` FROM pull_requests
		WHERE state = 'open' AND repository = $1 AND head_sha = $2
		ORDER BY number`

	var rows []pullRequestRow
	if err := s.conn(ctx).SelectContext(ctx, &rows, query, repo, sha); err != nil {
		return nil, fmt.Errorf("find pull requests by sha %s: %w", sha, err)
	}
	return toCoreList(rows), nil
}

// SampleForVerification prefers never-verified rows, then the oldest verification. Ties are random.
func (s *postgresStore) SampleForVerification(ctx context.Context, limit int) ([]*core.PullRequest, error) {
	query := `SELECT ` + pullRequestColumns + ` FROM pull_requests
		WHERE state = 'open'
		ORDER BY verified_at ASC NULLS FIRST, random()
		LIMIT $1`

	var rows []pullRequestRow
	if err := s.conn(ctx).SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("sample pull requests: %w", err)
	}
	return toCoreList(rows), nil
}

// DeletePullRequest removes the PR; children go with it through ON DELETE CASCADE.
func (s *postgresStore) DeletePullRequest(ctx context.Context, repo string, number int) error {
	res, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM pull_requests WHERE repository = $1 AND number = $2`, repo, number)
	if err != nil {
		return fmt.Errorf("delete pull request %s#%d: %w", repo, number, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete pull request %s#%d: %w", repo, number, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *postgresStore) SaveDerivedState(ctx context.Context, prID int64, state core.DerivedState, groupVersion int64) error {
	query := `
		UPDATE pull_requests SET
			backend_approval_status = $2,
			ready_for_backend_review = $3,
			ready_for_backend_review_at = $4,
			fully_approved = $5,
			approved_at = $6,
			awaiting_author_changes = $7,
			narrative_kind = $8,
			narrative_detail = $9,
			reviewer_group_version = $10,
			updated_at = NOW()
		WHERE id = $1`

	res, err := s.conn(ctx).ExecContext(ctx, query, prID,
		string(state.BackendApprovalStatus), state.ReadyForBackendReview, state.ReadyForBackendReviewAt,
		state.FullyApproved, state.ApprovedAt, state.AwaitingAuthorChanges,
		string(state.Narrative.Kind), state.Narrative.Detail, groupVersion,
	)
	if err != nil {
		return fmt.Errorf("save derived state for pr %d: %w", prID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *postgresStore) MarkVerified(ctx context.Context, prID int64, at time.Time) error {
	_, err := s.conn(ctx).ExecContext(ctx, `UPDATE pull_requests SET verified_at = $2 WHERE id = $1`, prID, at)
	if err != nil {
		return fmt.Errorf("mark pr %d verified: %w", prID, err)
	}
	return nil
}
