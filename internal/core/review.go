package core

import (
	"strings"
	"time"
)

// ReviewState is the verdict a reviewer left on a pull request.
type ReviewState string

const (
	ReviewApproved         ReviewState = "APPROVED"
	ReviewChangesRequested ReviewState = "CHANGES_REQUESTED"
	ReviewCommented        ReviewState = "COMMENTED"
	ReviewDismissed        ReviewState = "DISMISSED"
	ReviewPending          ReviewState = "PENDING"
)

// ParseReviewState normalizes a raw GitHub review state. Unknown values map to PENDING,
// which never counts towards any approval rule.
func ParseReviewState(s string) ReviewState {
	switch ReviewState(strings.ToUpper(strings.TrimSpace(s))) {
	case ReviewApproved:
		return ReviewApproved
	case ReviewChangesRequested:
		return ReviewChangesRequested
	case ReviewCommented:
		return ReviewCommented
	case ReviewDismissed:
		return ReviewDismissed
	default:
		return ReviewPending
	}
}

// Review represents a single reviewer verdict stored in the database.
// ID is the GitHub review id and is unique per pull request.
type Review struct {
	ID            int64       `db:"id" json:"id"`
	PullRequestID int64       `db:"pull_request_id" json:"-"`
	Author        string      `db:"author" json:"author"`
	State         ReviewState `db:"state" json:"state"`
	SubmittedAt   time.Time   `db:"submitted_at" json:"submitted_at"`
	Body          string      `db:"body" json:"-"`
}

// Comment is a conversation comment left on a pull request.
type Comment struct {
	ID            int64     `db:"id" json:"id"`
	PullRequestID int64     `db:"pull_request_id" json:"-"`
	Author        string    `db:"author" json:"author"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	Body          string    `db:"body" json:"-"`
}

// Commit is the subset of commit metadata needed to attribute pushes to the PR author.
type Commit struct {
	PullRequestID  int64     `db:"pull_request_id" json:"-"`
	SHA            string    `db:"sha" json:"sha"`
	AuthorLogin    string    `db:"author_login" json:"author_login"`
	CommitterLogin string    `db:"committer_login" json:"committer_login"`
	AuthorName     string    `db:"author_name" json:"author_name"`
	CommittedAt    time.Time `db:"committed_at" json:"committed_at"`
}
