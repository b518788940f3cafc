package approval

import (
	"strings"

	"github.com/sevigo/pr-tracker/internal/core"
)

// FullApprovalInput carries everything FullyApproved looks at.
type FullApprovalInput struct {
	State         core.PRState
	Draft         bool
	TotalChecks   int
	FailedChecks  int
	BackendStatus core.BackendApprovalStatus
	// FailingDetail is the cached list of failing checks; nil when unavailable.
	FailingDetail *[]core.CheckResult
}

// IsApprovalCheck reports whether the check is the self-referential gate that fails
// until the backend group approves.
func IsApprovalCheck(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "backend") && strings.Contains(lower, "approval")
}

// FullyApproved decides whether a PR is ready to merge.
//
// An open, non-draft PR with at least one check is fully approved when no check
// fails, or when the backend group approved and the only failing check is the
// approval gate itself. If the failing-check detail is unavailable in that last
// case the single failure is assumed to be the gate.
func FullyApproved(in FullApprovalInput) bool {
	if in.State != core.PRStateOpen || in.Draft || in.TotalChecks < 1 {
		return false
	}
	if in.FailedChecks == 0 {
		return true
	}
	if in.BackendStatus != core.BackendApproved || in.FailedChecks != 1 {
		return false
	}
	if in.FailingDetail == nil {
		return true
	}
	var failing []core.CheckResult
	for _, c := range *in.FailingDetail {
		if c.Status.IsFailing() {
			failing = append(failing, c)
		}
	}
	return len(failing) == 1 && IsApprovalCheck(failing[0].Name)
}
