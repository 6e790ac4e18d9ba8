package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepRecordMarkCompletedMergesSnapshot(t *testing.T) {
	first := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	r := &StepRecord{StepName: "personal_info"}
	r.MarkCompleted(map[string]interface{}{"phone_number": "+2348000000000", "bio": "old"}, first)
	r.MarkCompleted(map[string]interface{}{"bio": "new"}, second)

	assert.Equal(t, map[string]interface{}{"phone_number": "+2348000000000", "bio": "new"}, r.StepData)
	assert.True(t, r.IsCompleted)
	assert.False(t, r.IsSkipped)
	require.NotNil(t, r.CompletedAt)
	assert.Equal(t, second, *r.CompletedAt)
	assert.True(t, r.Resolved())
}

func TestStepRecordSkipThenComplete(t *testing.T) {
	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	r := &StepRecord{StepName: "availability", StepData: map[string]interface{}{"hourly_rate": 5000}}
	r.MarkSkipped("later", at)
	assert.True(t, r.IsSkipped)
	assert.False(t, r.IsCompleted)
	assert.Equal(t, "later", r.SkipReason)
	assert.Nil(t, r.CompletedAt)
	assert.Equal(t, 5000, r.StepData["hourly_rate"])

	r.MarkCompleted(nil, at)
	assert.True(t, r.IsCompleted)
	assert.False(t, r.IsSkipped)
	assert.Empty(t, r.SkipReason)
}

func TestNilStepRecordIsUnresolved(t *testing.T) {
	var r *StepRecord
	assert.False(t, r.Resolved())
	assert.False(t, (&StepRecord{}).Resolved())
}
