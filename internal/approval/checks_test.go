package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-tracker/internal/core"
)

func TestDedupeChecks(t *testing.T) {
	raw := []core.CheckResult{
		{Name: "lint", SuiteName: "lint", Status: core.CheckSuccess},
		{Name: "lint", SuiteName: "lint", Status: core.CheckFailure},
		{Name: "tests", SuiteName: "tests", Status: core.CheckFailure},
		{Name: "tests", SuiteName: "tests", Status: core.CheckSuccess, Required: true},
		{Name: "docs", Status: core.CheckPending},
		{Name: "docs", Status: core.CheckSuccess},
		{Name: "coverage", SuiteName: "coverage", Status: core.CheckSuccess},
	}

	got := DedupeChecks(raw)
	require.Len(t, got, 4)

	byName := map[string]core.CheckResult{}
	for _, c := range got {
		byName[c.Name] = c
	}
	assert.Equal(t, core.CheckFailure, byName["lint"].Status, "failing beats succeeding")
	assert.True(t, byName["tests"].Required, "required beats failing")
	assert.Equal(t, core.CheckSuccess, byName["tests"].Status)
	assert.Equal(t, core.CheckSuccess, byName["docs"].Status, "succeeding beats pending")

	assert.Equal(t, "lint", got[0].Name, "first-seen order is kept")
}

func TestSummarize(t *testing.T) {
	checks := []core.CheckResult{
		{Name: "a", Status: core.CheckSuccess},
		{Name: "b", Status: core.CheckSkipped},
		{Name: "c", Status: core.CheckFailure},
		{Name: "d", Status: core.CheckCancelled},
		{Name: "e", Status: core.CheckPending},
		{Name: "f", Status: core.CheckUnknown},
	}
	s := Summarize(checks)
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 2, s.Successful)
	assert.Equal(t, 2, s.Failed)
	assert.Equal(t, 2, s.Pending)
	require.Len(t, s.Failing, 2)
	assert.Equal(t, "c", s.Failing[0].Name)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Total)
	assert.Nil(t, s.Failing)
}
