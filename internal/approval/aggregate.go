package approval

import (
	"slices"
	"strings"

	"github.com/sevigo/pr-tracker/internal/core"
)

// LatestActionable reduces a review history to one review per author.
//
// For each author it keeps the most recent review whose state is not COMMENTED.
// An author who only ever commented is represented by their latest comment review.
// A COMMENTED review therefore never shadows an earlier approval or change request.
// The result is sorted by author.
func LatestActionable(reviews []core.Review) []core.Review {
	type picked struct {
		actionable *core.Review
		latest     *core.Review
	}
	byAuthor := make(map[string]*picked)

	for i := range reviews {
		r := &reviews[i]
		key := strings.ToLower(strings.TrimSpace(r.Author))
		if key == "" {
			continue
		}
		p, ok := byAuthor[key]
		if !ok {
			p = &picked{}
			byAuthor[key] = p
		}
		if p.latest == nil || newer(r, p.latest) {
			p.latest = r
		}
		if r.State != core.ReviewCommented && (p.actionable == nil || newer(r, p.actionable)) {
			p.actionable = r
		}
	}

	out := make([]core.Review, 0, len(byAuthor))
	for _, p := range byAuthor {
		if p.actionable != nil {
			out = append(out, *p.actionable)
		} else {
			out = append(out, *p.latest)
		}
	}
	slices.SortFunc(out, func(a, b core.Review) int {
		return strings.Compare(strings.ToLower(a.Author), strings.ToLower(b.Author))
	})
	return out
}

// newer orders reviews by submission time, falling back to the GitHub id which
// grows monotonically.
func newer(a, b *core.Review) bool {
	if a.SubmittedAt.Equal(b.SubmittedAt) {
		return a.ID > b.ID
	}
	return a.SubmittedAt.After(b.SubmittedAt)
}
