package github

import (
	"strings"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-tracker/internal/core"
)

func toPullRequest(repository string, pr *github.PullRequest) *core.PullRequest {
	state := core.PRState(strings.ToLower(pr.GetState()))
	if pr.GetMerged() || pr.MergedAt != nil {
		state = core.PRStateMerged
	}

	labels := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, l.GetName())
	}

	return &core.PullRequest{
		GitHubID:   pr.GetID(),
		Repository: repository,
		Number:     pr.GetNumber(),
		Title:      pr.GetTitle(),
		Author:     pr.GetUser().GetLogin(),
		State:      state,
		Draft:      pr.GetDraft(),
		Labels:     labels,
		HeadSHA:    pr.GetHead().GetSHA(),
		BaseBranch: pr.GetBase().GetRef(),
		CreatedAt:  pr.GetCreatedAt().Time,
	}
}

func toReviews(in []*github.PullRequestReview) []core.Review {
	out := make([]core.Review, 0, len(in))
	for _, r := range in {
		out = append(out, core.Review{
			ID:          r.GetID(),
			Author:      r.GetUser().GetLogin(),
			State:       core.ParseReviewState(r.GetState()),
			SubmittedAt: r.GetSubmittedAt().Time,
			Body:        r.GetBody(),
		})
	}
	return out
}

// toCheckResults merges check runs and commit statuses. Check runs are keyed by
// their own name so re-runs of the same check collapse during de-duplication.
func toCheckResults(runs []*github.CheckRun, statuses []*github.RepoStatus, required []string) []core.CheckResult {
	isRequired := make(map[string]bool, len(required))
	for _, r := range required {
		isRequired[r] = true
	}

	out := make([]core.CheckResult, 0, len(runs)+len(statuses))
	for _, run := range runs {
		status := core.ParseCheckStatus(run.GetStatus())
		if run.GetStatus() == "completed" {
			status = core.ParseCheckStatus(run.GetConclusion())
		}
		out = append(out, core.CheckResult{
			Name:      run.GetName(),
			Status:    status,
			Required:  isRequired[run.GetName()],
			SuiteName: run.GetName(),
		})
	}
	for _, st := range statuses {
		out = append(out, core.CheckResult{
			Name:      st.GetContext(),
			Status:    core.ParseCheckStatus(st.GetState()),
			Required:  isRequired[st.GetContext()],
			SuiteName: st.GetContext(),
		})
	}
	return out
}

func toComments(issue []*github.IssueComment, review []*github.PullRequestComment) []core.Comment {
	out := make([]core.Comment, 0, len(issue)+len(review))
	for _, c := range issue {
		out = append(out, core.Comment{
			ID:        c.GetID(),
			Author:    c.GetUser().GetLogin(),
			CreatedAt: c.GetCreatedAt().Time,
			Body:      c.GetBody(),
		})
	}
	for _, c := range review {
		out = append(out, core.Comment{
			ID:        c.GetID(),
			Author:    c.GetUser().GetLogin(),
			CreatedAt: c.GetCreatedAt().Time,
			Body:      c.GetBody(),
		})
	}
	return out
}

func toCommits(in []*github.RepositoryCommit) []core.Commit {
	out := make([]core.Commit, 0, len(in))
	for _, c := range in {
		committed := c.GetCommit().GetCommitter().GetDate().Time
		if committed.IsZero() {
			committed = c.GetCommit().GetAuthor().GetDate().Time
		}
		out = append(out, core.Commit{
			SHA:            c.GetSHA(),
			AuthorLogin:    c.GetAuthor().GetLogin(),
			CommitterLogin: c.GetCommitter().GetLogin(),
			AuthorName:     c.GetCommit().GetAuthor().GetName(),
			CommittedAt:    committed,
		})
	}
	return out
}

func toLogins(users []*github.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		if login := u.GetLogin(); login != "" {
			out = append(out, login)
		}
	}
	return out
}
