package github

import (
	"context"
	"fmt"

	"github.com/sevigo/pr-tracker/internal/core"
)

// Fetcher reads pull request data from GitHub and returns it as core types.
//
//go:generate mockgen -destination=../../mocks/mock_fetcher.go -package=mocks . Fetcher
type Fetcher interface {
	OpenPullRequests(ctx context.Context, owner, repo string) ([]*core.PullRequest, error)
	PullRequest(ctx context.Context, ref core.PRRef) (*core.PullRequest, error)
	Reviews(ctx context.Context, ref core.PRRef) ([]core.Review, error)
	// Checks returns raw check runs and commit statuses for headSHA, not yet de-duplicated.
	Checks(ctx context.Context, ref core.PRRef, headSHA, baseBranch string) ([]core.CheckResult, error)
	Comments(ctx context.Context, ref core.PRRef) ([]core.Comment, error)
	Commits(ctx context.Context, ref core.PRRef) ([]core.Commit, error)
	TeamMembers(ctx context.Context, org, team string) ([]string, error)
}

type fetcher struct {
	client Client
}

// NewFetcher creates a Fetcher on top of client.
func NewFetcher(client Client) Fetcher {
	return &fetcher{client: client}
}

func (f *fetcher) OpenPullRequests(ctx context.Context, owner, repo string) ([]*core.PullRequest, error) {
	prs, err := f.client.ListOpenPullRequests(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("list open pull requests for %s/%s: %w", owner, repo, err)
	}
	fullName := owner + "/" + repo
	out := make([]*core.PullRequest, 0, len(prs))
	for _, pr := range prs {
		out = append(out, toPullRequest(fullName, pr))
	}
	return out, nil
}

func (f *fetcher) PullRequest(ctx context.Context, ref core.PRRef) (*core.PullRequest, error) {
	pr, err := f.client.GetPullRequest(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, fmt.Errorf("get pull request %s: %w", ref, err)
	}
	return toPullRequest(ref.FullName(), pr), nil
}

func (f *fetcher) Reviews(ctx context.Context, ref core.PRRef) ([]core.Review, error) {
	reviews, err := f.client.ListReviews(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, fmt.Errorf("list reviews for %s: %w", ref, err)
	}
	return toReviews(reviews), nil
}

func (f *fetcher) Checks(ctx context.Context, ref core.PRRef, headSHA, baseBranch string) ([]core.CheckResult, error) {
	runs, err := f.client.ListCheckRuns(ctx, ref.Owner, ref.Repo, headSHA, "")
	if err != nil {
		return nil, fmt.Errorf("list check runs for %s: %w", ref, err)
	}
	statuses, err := f.client.ListStatuses(ctx, ref.Owner, ref.Repo, headSHA)
	if err != nil {
		return nil, fmt.Errorf("list statuses for %s: %w", ref, err)
	}
	var required []string
	if baseBranch != "" {
		required, err = f.client.ListRequiredContexts(ctx, ref.Owner, ref.Repo, baseBranch)
		if err != nil {
			return nil, fmt.Errorf("list required checks for %s: %w", ref, err)
		}
	}
	return toCheckResults(runs, statuses, required), nil
}

func (f *fetcher) Comments(ctx context.Context, ref core.PRRef) ([]core.Comment, error) {
	issue, err := f.client.ListIssueComments(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, fmt.Errorf("list comments for %s: %w", ref, err)
	}
	review, err := f.client.ListReviewComments(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, fmt.Errorf("list review comments for %s: %w", ref, err)
	}
	return toComments(issue, review), nil
}

func (f *fetcher) Commits(ctx context.Context, ref core.PRRef) ([]core.Commit, error) {
	commits, err := f.client.ListCommits(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, fmt.Errorf("list commits for %s: %w", ref, err)
	}
	return toCommits(commits), nil
}

func (f *fetcher) TeamMembers(ctx context.Context, org, team string) ([]string, error) {
	users, err := f.client.ListTeamMembers(ctx, org, team)
	if err != nil {
		return nil, fmt.Errorf("list members of %s/%s: %w", org, team, err)
	}
	return toLogins(users), nil
}
