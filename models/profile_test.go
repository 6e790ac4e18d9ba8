package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseProfileStatusAliases(t *testing.T) {
	assert.Equal(t, ProfileNotStarted, ParseProfileStatus("pending_onboarding"))
	assert.Equal(t, ProfileNotStarted, ParseProfileStatus("draft"))
	assert.Equal(t, ProfilePendingReview, ParseProfileStatus("under_review"))
	assert.Equal(t, ProfileVerified, ParseProfileStatus("approved"))
	assert.Equal(t, ProfileRejected, ParseProfileStatus("rejected"))

	unknown := ParseProfileStatus("archived")
	assert.Equal(t, ProfileStatus("archived"), unknown)
	assert.False(t, unknown.Valid())
}

func TestProfileStatusPredicates(t *testing.T) {
	cases := []struct {
		status    ProfileStatus
		canEdit   bool
		submitted bool
	}{
		{ProfileNotStarted, true, false},
		{ProfileInProgress, true, false},
		{ProfileRejected, true, false},
		{ProfilePendingReview, false, true},
		{ProfileVerified, false, true},
		{ProfileSuspended, false, true},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.True(t, tc.status.Valid())
			assert.Equal(t, tc.canEdit, tc.status.CanEdit())
			assert.Equal(t, tc.submitted, tc.status.IsSubmitted())
		})
	}
}

func TestProfileStatusTransitions(t *testing.T) {
	assert.True(t, ProfileNotStarted.CanTransitionTo(ProfileInProgress))
	assert.True(t, ProfileInProgress.CanTransitionTo(ProfilePendingReview))
	assert.True(t, ProfilePendingReview.CanTransitionTo(ProfileVerified))
	assert.True(t, ProfilePendingReview.CanTransitionTo(ProfileRejected))
	assert.True(t, ProfileRejected.CanTransitionTo(ProfileInProgress))

	assert.False(t, ProfileNotStarted.CanTransitionTo(ProfilePendingReview))
	assert.False(t, ProfileRejected.CanTransitionTo(ProfilePendingReview))
	assert.False(t, ProfileVerified.CanTransitionTo(ProfileInProgress))
	assert.False(t, ProfileInProgress.CanTransitionTo(ProfileVerified))

	for _, s := range []ProfileStatus{ProfileNotStarted, ProfileInProgress, ProfilePendingReview, ProfileVerified, ProfileRejected} {
		assert.True(t, s.CanTransitionTo(ProfileSuspended), s)
	}
	assert.False(t, ProfileSuspended.CanTransitionTo(ProfileSuspended))
	assert.False(t, ProfileSuspended.CanTransitionTo(ProfileInProgress))
}

func TestNewProfileStartsEmpty(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	p := NewProfile("p-1", "a-1", now)

	assert.Equal(t, ProfileNotStarted, p.Status)
	assert.NotNil(t, p.PracticeAreaIDs)
	assert.Empty(t, p.PracticeAreaIDs)
	assert.Empty(t, p.SpecializationIDs)
	assert.Empty(t, p.LanguageIDs)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
}
