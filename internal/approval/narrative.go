package approval

import (
	"fmt"
	"time"

	"github.com/sevigo/pr-tracker/internal/core"
)

const narrativeDateLayout = "Jan 2, 2006 15:04 MST"

// NarrativeInput carries the data the narrative builder looks at.
type NarrativeInput struct {
	PRAuthor      string
	Latest        []core.Review
	History       []core.Review
	Comments      []core.Comment
	Commits       *[]core.Commit // nil when the commit lookup failed
	Group         core.ReviewerGroup
	BackendStatus core.BackendApprovalStatus
}

// BuildNarrative explains why a PR is blocked. Rules are evaluated in order and the
// first match wins:
//
//  1. the author pushed commits after the latest backend approval
//  2. a review was dismissed, someone outside the group approved, a group member left
//     feedback and backend approval is not granted
//  3. the latest group feedback is either answered by the author or still open,
//     unless the same reviewer approved afterwards
func BuildNarrative(in NarrativeInput) core.Narrative {
	if n, ok := newCommitsAfterApproval(in); ok {
		return n
	}
	if newCommitFromAuthor(in) {
		return core.Narrative{Kind: core.NarrativeNewCommitFromAuthor}
	}
	return changesRequested(in)
}

func newCommitsAfterApproval(in NarrativeInput) (core.Narrative, bool) {
	if in.Commits == nil {
		return core.Narrative{}, false
	}
	var approval *core.Review
	for i := range in.History {
		r := &in.History[i]
		if r.State == core.ReviewApproved && in.Group.Contains(r.Author) && (approval == nil || newer(r, approval)) {
			approval = r
		}
	}
	if approval == nil {
		return core.Narrative{}, false
	}
	for _, c := range *in.Commits {
		if CommitByAuthor(c, in.PRAuthor) && c.CommittedAt.After(approval.SubmittedAt) {
			return core.Narrative{
				Kind:   core.NarrativeNewCommitsAfterApproval,
				Detail: fmt.Sprintf("New commits after approval by %s on %s", approval.Author, formatTime(approval.SubmittedAt)),
			}, true
		}
	}
	return core.Narrative{}, false
}

// CommitByAuthor attributes a commit to a login. The linked author login wins;
// the committer login and the git author name are only consulted when GitHub could
// not link the commit author to an account.
func CommitByAuthor(c core.Commit, login string) bool {
	if c.AuthorLogin != "" {
		return core.SameLogin(c.AuthorLogin, login)
	}
	return core.SameLogin(c.CommitterLogin, login) || core.SameLogin(c.AuthorName, login)
}

func newCommitFromAuthor(in NarrativeInput) bool {
	if in.BackendStatus == core.BackendApproved {
		return false
	}
	var dismissed, groupFeedback bool
	for _, r := range in.History {
		if r.State == core.ReviewDismissed {
			dismissed = true
		}
		if isFeedback(r.State) && in.Group.Contains(r.Author) {
			groupFeedback = true
		}
	}
	if !dismissed || !groupFeedback {
		return false
	}
	for _, r := range in.Latest {
		if r.State == core.ReviewApproved && !in.Group.Contains(r.Author) {
			return true
		}
	}
	return false
}

func changesRequested(in NarrativeInput) core.Narrative {
	var feedback *core.Review
	for i := range in.History {
		r := &in.History[i]
		if !isFeedback(r.State) || !in.Group.Contains(r.Author) || core.SameLogin(r.Author, in.PRAuthor) {
			continue
		}
		if feedback == nil || newer(r, feedback) {
			feedback = r
		}
	}
	if feedback == nil {
		return core.Narrative{Kind: core.NarrativeNone}
	}

	for _, r := range in.History {
		if r.State == core.ReviewApproved && core.SameLogin(r.Author, feedback.Author) && r.SubmittedAt.After(feedback.SubmittedAt) {
			return core.Narrative{Kind: core.NarrativeNone}
		}
	}

	if authorRepliedAfter(in, feedback.SubmittedAt) {
		return core.Narrative{
			Kind:   core.NarrativeNewCommentFromAuthor,
			Detail: fmt.Sprintf("%s replied to %s", in.PRAuthor, feedback.Author),
		}
	}

	verb := "Changes requested"
	if feedback.State == core.ReviewCommented {
		verb = "Comments left"
	}
	return core.Narrative{
		Kind:   core.NarrativeChangesRequested,
		Detail: fmt.Sprintf("%s by %s on %s", verb, feedback.Author, formatTime(feedback.SubmittedAt)),
	}
}

func authorRepliedAfter(in NarrativeInput, since time.Time) bool {
	for _, c := range in.Comments {
		if core.SameLogin(c.Author, in.PRAuthor) && c.CreatedAt.After(since) {
			return true
		}
	}
	for _, r := range in.History {
		if core.SameLogin(r.Author, in.PRAuthor) && r.SubmittedAt.After(since) {
			return true
		}
	}
	return false
}

func isFeedback(s core.ReviewState) bool {
	return s == core.ReviewChangesRequested || s == core.ReviewCommented
}

func formatTime(t time.Time) string {
	return t.UTC().Format(narrativeDateLayout)
}
