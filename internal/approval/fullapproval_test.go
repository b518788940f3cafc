package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/pr-tracker/internal/core"
)

func TestFullyApproved(t *testing.T) {
	base := FullApprovalInput{
		State:         core.PRStateOpen,
		TotalChecks:   10,
		BackendStatus: core.BackendApproved,
	}

	tests := []struct {
		name   string
		mutate func(in *FullApprovalInput)
		want   bool
	}{
		{
			name:   "all green",
			mutate: func(_ *FullApprovalInput) {},
			want:   true,
		},
		{
			name:   "all green without backend approval",
			mutate: func(in *FullApprovalInput) { in.BackendStatus = core.BackendNotApproved },
			want:   true,
		},
		{
			name:   "closed PR",
			mutate: func(in *FullApprovalInput) { in.State = core.PRStateClosed },
			want:   false,
		},
		{
			name:   "draft PR",
			mutate: func(in *FullApprovalInput) { in.Draft = true },
			want:   false,
		},
		{
			name:   "no checks recorded",
			mutate: func(in *FullApprovalInput) { in.TotalChecks = 0 },
			want:   false,
		},
		{
			name: "only the approval gate failing",
			mutate: func(in *FullApprovalInput) {
				in.FailedChecks = 1
				in.FailingDetail = failing("Require backend-review-group approval")
			},
			want: true,
		},
		{
			name: "single real failure",
			mutate: func(in *FullApprovalInput) {
				in.FailedChecks = 1
				in.FailingDetail = failing("Linting")
			},
			want: false,
		},
		{
			name: "approval gate failing without backend approval",
			mutate: func(in *FullApprovalInput) {
				in.FailedChecks = 1
				in.BackendStatus = core.BackendNotApproved
				in.FailingDetail = failing("Require backend-review-group approval")
			},
			want: false,
		},
		{
			name: "gate plus a real failure",
			mutate: func(in *FullApprovalInput) {
				in.FailedChecks = 2
				in.FailingDetail = failing("Require backend-review-group approval", "Linting")
			},
			want: false,
		},
		{
			name: "detail unavailable assumes the gate",
			mutate: func(in *FullApprovalInput) {
				in.FailedChecks = 1
				in.FailingDetail = nil
			},
			want: true,
		},
		{
			name: "detail disagrees with counters",
			mutate: func(in *FullApprovalInput) {
				in.FailedChecks = 1
				in.FailingDetail = failing()
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			assert.Equal(t, tt.want, FullyApproved(in))
		})
	}
}

func TestIsApprovalCheck(t *testing.T) {
	assert.True(t, IsApprovalCheck("Require backend-review-group approval"))
	assert.True(t, IsApprovalCheck("BACKEND APPROVAL"))
	assert.False(t, IsApprovalCheck("backend tests"))
	assert.False(t, IsApprovalCheck("approval bot"))
}
