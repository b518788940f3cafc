package core

import "strings"

// CheckStatus is the normalized outcome of a CI check run or commit status.
type CheckStatus string

const (
	CheckSuccess   CheckStatus = "success"
	CheckFailure   CheckStatus = "failure"
	CheckPending   CheckStatus = "pending"
	CheckError     CheckStatus = "error"
	CheckCancelled CheckStatus = "cancelled"
	CheckSkipped   CheckStatus = "skipped"
	CheckUnknown   CheckStatus = "unknown"
)

// IsFailing reports whether the status blocks a merge.
func (s CheckStatus) IsFailing() bool {
	return s == CheckFailure || s == CheckError || s == CheckCancelled
}

// IsSucceeding reports whether the status counts as green.
func (s CheckStatus) IsSucceeding() bool {
	return s == CheckSuccess || s == CheckSkipped
}

// ParseCheckStatus maps GitHub check-run conclusions and commit-status states onto CheckStatus.
func ParseCheckStatus(s string) CheckStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success":
		return CheckSuccess
	case "failure", "timed_out", "action_required", "startup_failure":
		return CheckFailure
	case "error":
		return CheckError
	case "cancelled":
		return CheckCancelled
	case "skipped", "neutral":
		return CheckSkipped
	case "pending", "queued", "in_progress", "waiting", "requested", "expected":
		return CheckPending
	default:
		return CheckUnknown
	}
}

// CheckResult is one CI check reported against a pull request head.
type CheckResult struct {
	PullRequestID int64       `db:"pull_request_id" json:"-"`
	Name          string      `db:"name" json:"name"`
	Status        CheckStatus `db:"status" json:"status"`
	Required      bool        `db:"required" json:"required"`
	SuiteName     string      `db:"suite_name" json:"suite_name"`
}
