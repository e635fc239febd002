package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unclebandit/outreach-tracker/internal/model"
)

func TestParseOutcome(t *testing.T) {
	cases := map[string]model.Outcome{
		"contacted":        model.OutcomeContacted,
		"  Contacted ":     model.OutcomeContacted,
		"no answer":        model.OutcomeNoAnswer,
		"No_Answer":        model.OutcomeNoAnswer,
		"not-interested":   model.OutcomeNotInterested,
		"follow  up":       model.OutcomeFollowUp,
	}
	for in, want := range cases {
		got, ok := model.ParseOutcome(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "voicemail", "contact"} {
		_, ok := model.ParseOutcome(bad)
		assert.False(t, ok, bad)
	}
}

func TestBranchNumbersSorted(t *testing.T) {
	nums := model.BranchNumbers()
	assert.Len(t, nums, len(model.Branches))
	for i := 1; i < len(nums); i++ {
		assert.Less(t, nums[i-1], nums[i])
	}
	assert.Equal(t, "Dublin", model.BranchName(4))
	assert.Equal(t, "Unknown", model.BranchName(99))
}
