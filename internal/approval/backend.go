package approval

import "github.com/sevigo/pr-tracker/internal/core"

// BackendApproval returns approved when at least one member of the review group
// has APPROVED as their latest actionable verdict. There is no quorum.
func BackendApproval(latest []core.Review, group core.ReviewerGroup) core.BackendApprovalStatus {
	for _, r := range latest {
		if r.State == core.ReviewApproved && group.Contains(r.Author) {
			return core.BackendApproved
		}
	}
	return core.BackendNotApproved
}
