package core

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// PRState is the lifecycle state of a pull request on GitHub.
type PRState string

const (
	PRStateOpen   PRState = "open"
	PRStateClosed PRState = "closed"
	PRStateMerged PRState = "merged"
)

// BackendApprovalStatus tells whether a member of the backend review group approved the PR.
type BackendApprovalStatus string

const (
	BackendApproved    BackendApprovalStatus = "approved"
	BackendNotApproved BackendApprovalStatus = "not_approved"
)

// NarrativeKind classifies why a pull request is currently blocked.
type NarrativeKind string

const (
	NarrativeNone                    NarrativeKind = "none"
	NarrativeNewCommitsAfterApproval NarrativeKind = "new_commits_after_approval"
	NarrativeNewCommitFromAuthor     NarrativeKind = "new_commit_from_author"
	NarrativeChangesRequested        NarrativeKind = "changes_requested"
	NarrativeNewCommentFromAuthor    NarrativeKind = "new_comment_from_author"
)

// Narrative is the human readable explanation shown next to a blocked PR.
type Narrative struct {
	Kind   NarrativeKind `json:"kind"`
	Detail string        `json:"detail,omitempty"`
}

// PRRef identifies a pull request by repository and number.
type PRRef struct {
	Owner  string
	Repo   string
	Number int
}

// FullName returns "owner/repo".
func (r PRRef) FullName() string {
	return r.Owner + "/" + r.Repo
}

func (r PRRef) String() string {
	return fmt.Sprintf("%s#%d", r.FullName(), r.Number)
}

// ParseRepo splits an "owner/repo" string.
func ParseRepo(fullName string) (owner, repo string, err error) {
	parts := strings.Split(strings.TrimSpace(fullName), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository name %q, expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}

// DerivedState is everything the classifiers compute for a pull request.
// No field in here is ever written by an event handler directly.
type DerivedState struct {
	BackendApprovalStatus   BackendApprovalStatus `json:"backend_approval_status"`
	ReadyForBackendReview   bool                  `json:"ready_for_backend_review"`
	ReadyForBackendReviewAt *time.Time            `json:"ready_for_backend_review_at,omitempty"`
	FullyApproved           bool                  `json:"fully_approved"`
	ApprovedAt              *time.Time            `json:"approved_at,omitempty"`
	AwaitingAuthorChanges   bool                  `json:"awaiting_author_changes"`
	Narrative               Narrative             `json:"narrative"`
}

// PullRequest is the aggregate root tracked by the dashboard.
type PullRequest struct {
	ID         int64     `json:"id"`
	GitHubID   int64     `json:"github_id"`
	Repository string    `json:"repository"`
	Number     int       `json:"number"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	State      PRState   `json:"state"`
	Draft      bool      `json:"draft"`
	Labels     []string  `json:"labels"`
	HeadSHA    string    `json:"head_sha"`
	BaseBranch string    `json:"base_branch"`
	CreatedAt  time.Time `json:"created_at"`

	TotalChecks      int `json:"total_checks"`
	SuccessfulChecks int `json:"successful_checks"`
	FailedChecks     int `json:"failed_checks"`

	DerivedState

	ReviewerGroupVersion int64      `json:"reviewer_group_version"`
	FetchedAt            time.Time  `json:"fetched_at"`
	VerifiedAt           *time.Time `json:"verified_at,omitempty"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// Ref returns the PRRef of a stored pull request.
func (p *PullRequest) Ref() PRRef {
	owner, repo, _ := ParseRepo(p.Repository)
	return PRRef{Owner: owner, Repo: repo, Number: p.Number}
}

// IsOpen reports whether the PR is open on GitHub.
func (p *PullRequest) IsOpen() bool {
	return p.State == PRStateOpen
}

// ReviewerGroup is a versioned snapshot of the backend review group membership.
type ReviewerGroup struct {
	Version int64
	members map[string]struct{}
}

// NewReviewerGroup builds a snapshot. Logins are compared case-insensitively.
func NewReviewerGroup(version int64, logins []string) ReviewerGroup {
	members := make(map[string]struct{}, len(logins))
	for _, l := range logins {
		l = normalizeLogin(l)
		if l != "" {
			members[l] = struct{}{}
		}
	}
	return ReviewerGroup{Version: version, members: members}
}

// Contains reports whether login belongs to the group.
func (g ReviewerGroup) Contains(login string) bool {
	_, ok := g.members[normalizeLogin(login)]
	return ok
}

// Members returns the sorted member list.
func (g ReviewerGroup) Members() []string {
	out := make([]string, 0, len(g.members))
	for m := range g.members {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}

// SameMembers reports whether two snapshots have identical membership.
func (g ReviewerGroup) SameMembers(other ReviewerGroup) bool {
	if len(g.members) != len(other.members) {
		return false
	}
	for m := range g.members {
		if _, ok := other.members[m]; !ok {
			return false
		}
	}
	return true
}

// SameLogin compares two GitHub identities.
func SameLogin(a, b string) bool {
	a, b = normalizeLogin(a), normalizeLogin(b)
	return a != "" && a == b
}

func normalizeLogin(l string) string {
	return strings.ToLower(strings.TrimSpace(l))
}
