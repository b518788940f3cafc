package approval

import "github.com/sevigo/pr-tracker/internal/core"

// CheckSummary holds the counters persisted on the pull request.
type CheckSummary struct {
	Total      int
	Successful int
	Failed     int
	Pending    int
	Failing    []core.CheckResult
}

// DedupeChecks keeps one result per suite. Within a suite a required result beats an
// optional one, then failing beats succeeding, then succeeding beats anything else.
// Results without a suite name are grouped by their check name.
func DedupeChecks(raw []core.CheckResult) []core.CheckResult {
	index := make(map[string]int, len(raw))
	out := make([]core.CheckResult, 0, len(raw))
	for _, c := range raw {
		key := c.SuiteName
		if key == "" {
			key = c.Name
		}
		i, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, c)
			continue
		}
		if checkPriority(c) > checkPriority(out[i]) {
			out[i] = c
		}
	}
	return out
}

func checkPriority(c core.CheckResult) int {
	p := 0
	if c.Required {
		p += 4
	}
	switch {
	case c.Status.IsFailing():
		p += 2
	case c.Status.IsSucceeding():
		p++
	}
	return p
}

// Summarize counts an already de-duplicated check set.
func Summarize(checks []core.CheckResult) CheckSummary {
	s := CheckSummary{Total: len(checks)}
	for _, c := range checks {
		switch {
		case c.Status.IsFailing():
			s.Failed++
			s.Failing = append(s.Failing, c)
		case c.Status.IsSucceeding():
			s.Successful++
		default:
			s.Pending++
		}
	}
	return s
}
