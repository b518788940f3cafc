package approval

import (
	"strings"
	"time"

	"github.com/sevigo/pr-tracker/internal/core"
)

// IsReviewInfrastructureCheck reports whether a check only exists to track the
// review process itself. Such checks never block readiness.
func IsReviewInfrastructureCheck(name string, rules *core.GateRules) bool {
	if rules == nil {
		rules = core.DefaultGateRules()
	}
	lower := strings.ToLower(name)
	for _, p := range rules.InfrastructurePatterns {
		if p != "" && strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	for _, n := range rules.InfrastructureChecks {
		n = strings.ToLower(n)
		if n != "" && (lower == n || strings.Contains(lower, n)) {
			return true
		}
	}
	return false
}

// ReadyForBackendReview decides whether a PR can be handed to the backend review group.
//
// failing is the failing-check snapshot; nil means the snapshot is unavailable, in
// which case any failure counted in failedCount makes the PR not ready. The PR is
// ready when every failing check is review infrastructure and at least one reviewer
// outside the group has APPROVED as their latest actionable verdict.
func ReadyForBackendReview(failing *[]core.CheckResult, failedCount int, latest []core.Review, group core.ReviewerGroup, rules *core.GateRules) bool {
	if failing == nil {
		if failedCount > 0 {
			return false
		}
	} else {
		for _, c := range *failing {
			if !IsReviewInfrastructureCheck(c.Name, rules) {
				return false
			}
		}
	}
	for _, r := range latest {
		if r.State == core.ReviewApproved && !group.Contains(r.Author) {
			return true
		}
	}
	return false
}

// TrackTransition returns the timestamp to persist for a boolean that is stamped when
// it becomes true. It stamps now on false->true, clears on true->false and otherwise
// keeps the previous value so re-running with unchanged input never re-stamps.
func TrackTransition(prev bool, prevAt *time.Time, next bool, now time.Time) *time.Time {
	switch {
	case !prev && next:
		t := now
		return &t
	case prev && next:
		return prevAt
	default:
		return nil
	}
}
