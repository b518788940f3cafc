package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/pr-tracker/internal/core"
)

func narrativeFor(history []core.Review, comments []core.Comment, commits *[]core.Commit) core.Narrative {
	group := core.NewReviewerGroup(1, []string{"lead", "backend-dev"})
	latest := LatestActionable(history)
	return BuildNarrative(NarrativeInput{
		PRAuthor:      "dev",
		Latest:        latest,
		History:       history,
		Comments:      comments,
		Commits:       commits,
		Group:         group,
		BackendStatus: BackendApproval(latest, group),
	})
}

func commits(cs ...core.Commit) *[]core.Commit { return &cs }

func TestBuildNarrative(t *testing.T) {
	tests := []struct {
		name     string
		history  []core.Review
		comments []core.Comment
		commits  *[]core.Commit
		want     core.NarrativeKind
	}{
		{
			name:    "no reviews",
			want:    core.NarrativeNone,
			commits: commits(),
		},
		{
			name:    "author pushed after backend approval",
			history: []core.Review{review(1, "lead", core.ReviewApproved, at(1))},
			commits: commits(core.Commit{SHA: "a", AuthorLogin: "dev", CommittedAt: at(2)}),
			want:    core.NarrativeNewCommitsAfterApproval,
		},
		{
			name:    "commits before approval",
			history: []core.Review{review(1, "lead", core.ReviewApproved, at(3))},
			commits: commits(core.Commit{SHA: "a", AuthorLogin: "dev", CommittedAt: at(2)}),
			want:    core.NarrativeNone,
		},
		{
			name:    "commit lookup failed",
			history: []core.Review{review(1, "lead", core.ReviewApproved, at(1))},
			commits: nil,
			want:    core.NarrativeNone,
		},
		{
			name:    "bot commit after approval",
			history: []core.Review{review(1, "lead", core.ReviewApproved, at(1))},
			commits: commits(core.Commit{SHA: "a", AuthorLogin: "dependabot[bot]", AuthorName: "dev", CommittedAt: at(2)}),
			want:    core.NarrativeNone,
		},
		{
			name:    "unlinked commit attributed by committer login",
			history: []core.Review{review(1, "lead", core.ReviewApproved, at(1))},
			commits: commits(core.Commit{SHA: "a", CommitterLogin: "dev", CommittedAt: at(2)}),
			want:    core.NarrativeNewCommitsAfterApproval,
		},
		{
			name: "dismissed review with peer approval and group feedback",
			history: []core.Review{
				review(1, "peer", core.ReviewApproved, at(1)),
				review(2, "lead", core.ReviewChangesRequested, at(2)),
				review(3, "other-peer", core.ReviewDismissed, at(3)),
			},
			want: core.NarrativeNewCommitFromAuthor,
		},
		{
			name: "dismissed review without peer approval falls through",
			history: []core.Review{
				review(1, "peer", core.ReviewDismissed, at(1)),
				review(2, "lead", core.ReviewChangesRequested, at(2)),
			},
			want: core.NarrativeChangesRequested,
		},
		{
			name: "reviewer approved after requesting changes",
			history: []core.Review{
				review(1, "lead", core.ReviewChangesRequested, at(1)),
				review(2, "lead", core.ReviewApproved, at(2)),
			},
			commits: commits(),
			want:    core.NarrativeNone,
		},
		{
			name: "author replied with a comment",
			history: []core.Review{
				review(1, "lead", core.ReviewChangesRequested, at(1)),
			},
			comments: []core.Comment{{ID: 1, Author: "dev", CreatedAt: at(2)}},
			want:     core.NarrativeNewCommentFromAuthor,
		},
		{
			name: "author replied with a review comment",
			history: []core.Review{
				review(1, "backend-dev", core.ReviewCommented, at(1)),
				review(2, "dev", core.ReviewCommented, at(2)),
			},
			want: core.NarrativeNewCommentFromAuthor,
		},
		{
			name: "author comment before the feedback",
			history: []core.Review{
				review(1, "lead", core.ReviewChangesRequested, at(2)),
			},
			comments: []core.Comment{{ID: 1, Author: "dev", CreatedAt: at(1)}},
			want:     core.NarrativeChangesRequested,
		},
		{
			name: "feedback from outside the group is ignored",
			history: []core.Review{
				review(1, "peer", core.ReviewChangesRequested, at(1)),
			},
			want: core.NarrativeNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := narrativeFor(tt.history, tt.comments, tt.commits)
			assert.Equal(t, tt.want, got.Kind)
		})
	}
}

func TestBuildNarrative_Detail(t *testing.T) {
	got := narrativeFor([]core.Review{review(1, "lead", core.ReviewChangesRequested, at(1))}, nil, nil)
	assert.Equal(t, core.NarrativeChangesRequested, got.Kind)
	assert.Equal(t, "Changes requested by lead on Mar 10, 2025 10:00 UTC", got.Detail)

	got = narrativeFor([]core.Review{review(1, "lead", core.ReviewCommented, at(1))}, nil, nil)
	assert.Equal(t, "Comments left by lead on Mar 10, 2025 10:00 UTC", got.Detail)
}

func TestBuildNarrative_OwnReviewsOfGroupAuthor(t *testing.T) {
	group := core.NewReviewerGroup(1, []string{"lead"})
	history := []core.Review{review(1, "lead", core.ReviewCommented, at(1))}
	got := BuildNarrative(NarrativeInput{
		PRAuthor: "lead",
		Latest:   LatestActionable(history),
		History:  history,
		Group:    group,
	})
	assert.Equal(t, core.NarrativeNone, got.Kind)
}

func TestCommitByAuthor(t *testing.T) {
	assert.True(t, CommitByAuthor(core.Commit{AuthorLogin: "Dev"}, "dev"))
	assert.False(t, CommitByAuthor(core.Commit{AuthorLogin: "other", CommitterLogin: "dev"}, "dev"))
	assert.True(t, CommitByAuthor(core.Commit{AuthorName: "dev"}, "dev"))
	assert.False(t, CommitByAuthor(core.Commit{}, "dev"))
}
