// Package core defines the essential interfaces and data structures that form the
// backbone of the application: the pull request aggregate, its raw review and check
// data, and the events that ask for a pull request to be refreshed.
package core

import (
	"errors"
	"fmt"

	"github.com/google/go-github/v73/github"
)

// ErrEventIgnored is returned for webhook payloads that never affect PR state.
var ErrEventIgnored = errors.New("event does not affect pull request state")

// EventKind is the closed set of webhook events the tracker reacts to.
type EventKind int

const (
	EventPullRequest EventKind = iota + 1
	EventReview
	EventReviewComment
	EventIssueComment
	EventCheckRun
	EventCheckSuite
	EventStatus
	EventTeamMembership
)

func (k EventKind) String() string {
	switch k {
	case EventPullRequest:
		return "pull_request"
	case EventReview:
		return "pull_request_review"
	case EventReviewComment:
		return "pull_request_review_comment"
	case EventIssueComment:
		return "issue_comment"
	case EventCheckRun:
		return "check_run"
	case EventCheckSuite:
		return "check_suite"
	case EventStatus:
		return "status"
	case EventTeamMembership:
		return "membership"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Trigger names the data path that asked for a refresh.
type Trigger string

const (
	TriggerWebhook    Trigger = "webhook"
	TriggerPoll       Trigger = "poll"
	TriggerVerify     Trigger = "verify"
	TriggerReclassify Trigger = "reclassify"
	TriggerManual     Trigger = "manual"
)

// WebhookEvent is a simplified, internal view of a GitHub webhook event.
// Either Numbers or HeadSHA identifies the affected pull requests; team
// membership events carry neither.
type WebhookEvent struct {
	Kind    EventKind
	Action  string
	Owner   string
	Repo    string
	Numbers []int
	HeadSHA string
}

// RefreshRequest asks the reconciler to refetch and reclassify one pull request.
type RefreshRequest struct {
	Ref     PRRef
	Trigger Trigger
	Reason  string
}

// Requests expands the event into one refresh request per known PR number.
func (e *WebhookEvent) Requests() []RefreshRequest {
	out := make([]RefreshRequest, 0, len(e.Numbers))
	for _, n := range e.Numbers {
		out = append(out, RefreshRequest{
			Ref:     PRRef{Owner: e.Owner, Repo: e.Repo, Number: n},
			Trigger: TriggerWebhook,
			Reason:  e.Kind.String() + "." + e.Action,
		})
	}
	return out
}

// EventFromWebhook transforms a parsed go-github webhook payload into a WebhookEvent.
// It acts as an anti-corruption layer between GitHub's event types and the reconciler.
func EventFromWebhook(payload any) (*WebhookEvent, error) {
	switch e := payload.(type) {
	case *github.PullRequestEvent:
		switch e.GetAction() {
		case "opened", "reopened", "synchronize", "closed", "edited",
			"ready_for_review", "converted_to_draft", "labeled", "unlabeled":
		default:
			return nil, ErrEventIgnored
		}
		return withRepo(e.GetRepo(), &WebhookEvent{
			Kind: EventPullRequest, Action: e.GetAction(), Numbers: []int{e.GetNumber()},
		})
	case *github.PullRequestReviewEvent:
		return withRepo(e.GetRepo(), &WebhookEvent{
			Kind: EventReview, Action: e.GetAction(), Numbers: []int{e.GetPullRequest().GetNumber()},
		})
	case *github.PullRequestReviewCommentEvent:
		return withRepo(e.GetRepo(), &WebhookEvent{
			Kind: EventReviewComment, Action: e.GetAction(), Numbers: []int{e.GetPullRequest().GetNumber()},
		})
	case *github.IssueCommentEvent:
		if !e.GetIssue().IsPullRequest() {
			return nil, ErrEventIgnored
		}
		return withRepo(e.GetRepo(), &WebhookEvent{
			Kind: EventIssueComment, Action: e.GetAction(), Numbers: []int{e.GetIssue().GetNumber()},
		})
	case *github.CheckRunEvent:
		run := e.GetCheckRun()
		return withRepo(e.GetRepo(), &WebhookEvent{
			Kind: EventCheckRun, Action: e.GetAction(), Numbers: prNumbers(run.PullRequests), HeadSHA: run.GetHeadSHA(),
		})
	case *github.CheckSuiteEvent:
		suite := e.GetCheckSuite()
		return withRepo(e.GetRepo(), &WebhookEvent{
			Kind: EventCheckSuite, Action: e.GetAction(), Numbers: prNumbers(suite.PullRequests), HeadSHA: suite.GetHeadSHA(),
		})
	case *github.StatusEvent:
		return withRepo(e.GetRepo(), &WebhookEvent{
			Kind: EventStatus, Action: e.GetState(), HeadSHA: e.GetSHA(),
		})
	case *github.MembershipEvent:
		return &WebhookEvent{Kind: EventTeamMembership, Action: e.GetAction(), Owner: e.GetOrg().GetLogin()}, nil
	case *github.TeamEvent:
		return &WebhookEvent{Kind: EventTeamMembership, Action: e.GetAction(), Owner: e.GetOrg().GetLogin()}, nil
	default:
		return nil, ErrEventIgnored
	}
}

func withRepo(repo *github.Repository, ev *WebhookEvent) (*WebhookEvent, error) {
	if repo == nil || repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return nil, fmt.Errorf("repository or owner information is missing from the %s event", ev.Kind)
	}
	ev.Owner = repo.GetOwner().GetLogin()
	ev.Repo = repo.GetName()
	for _, n := range ev.Numbers {
		if n <= 0 {
			return nil, fmt.Errorf("invalid pull request number: %d", n)
		}
	}
	if len(ev.Numbers) == 0 && ev.HeadSHA == "" {
		return nil, fmt.Errorf("%s event carries neither a pull request nor a head SHA", ev.Kind)
	}
	return ev, nil
}

func prNumbers(prs []*github.PullRequest) []int {
	var out []int
	for _, pr := range prs {
		if n := pr.GetNumber(); n > 0 {
			out = append(out, n)
		}
	}
	return out
}
