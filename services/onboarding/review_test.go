package onboarding

import (
	"context"
	"errors"
	"testing"

	profileRepo "lexmarket/database/repository/profile"
	"lexmarket/models"
	"lexmarket/services/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitted(t *testing.T, f *fixture, accountID string) {
	t.Helper()
	f.completeRequired(t, accountID)
	_, err := f.svc.SubmitForReview(context.Background(), accountID)
	require.NoError(t, err)
}

func TestApprovePendingProfile(t *testing.T) {
	f := newFixture(t)
	submitted(t, f, "lawyer-1")

	pending, err := f.svc.PendingReviews(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "lawyer-1", pending[0].AccountID)

	profile, err := f.svc.Approve(context.Background(), "admin-1", "lawyer-1")
	require.NoError(t, err)
	assert.Equal(t, models.ProfileVerified, profile.Status)
	require.NotNil(t, profile.VerifiedAt)
	assert.Equal(t, fixedNow, *profile.VerifiedAt)

	assert.Contains(t, f.audit.actions(), "profile_approved")
	assert.Contains(t, f.events.types(), events.TypeProfileReviewed)

	_, err = f.svc.Approve(context.Background(), "admin-1", "lawyer-1")
	var transition *InvalidTransitionError
	require.True(t, errors.As(err, &transition))
	assert.Equal(t, models.ProfileVerified, transition.From)
}

func TestApproveRequiresPendingReview(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SaveStep(context.Background(), "lawyer-1", StepPersonalInfo, personalPayload())
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), "admin-1", "lawyer-1")
	var transition *InvalidTransitionError
	require.True(t, errors.As(err, &transition))
	assert.Equal(t, models.ProfileInProgress, transition.From)

	_, err = f.svc.Approve(context.Background(), "admin-1", "nobody")
	assert.True(t, errors.Is(err, profileRepo.ErrProfileNotFound))
}

func TestRejectedProfileCanResubmit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	submitted(t, f, "lawyer-1")

	_, err := f.svc.Reject(ctx, "admin-1", "lawyer-1", "  ")
	fields := validationFields(t, err)
	assert.Contains(t, fields, "reason")

	profile, err := f.svc.Reject(ctx, "admin-1", "lawyer-1", "Certificate is unreadable")
	require.NoError(t, err)
	assert.Equal(t, models.ProfileRejected, profile.Status)
	assert.Equal(t, "Certificate is unreadable", profile.RejectionReason)

	_, err = f.svc.SubmitForReview(ctx, "lawyer-1")
	var transition *InvalidTransitionError
	require.True(t, errors.As(err, &transition), "a rejected profile must be edited before resubmitting")

	_, err = f.svc.SaveStep(ctx, "lawyer-1", StepDocuments, documentsPayload())
	require.NoError(t, err)
	status, err := f.svc.GetStatus(ctx, "lawyer-1")
	require.NoError(t, err)
	assert.Equal(t, models.ProfileInProgress, status.ProfileStatus)

	res, err := f.svc.SubmitForReview(ctx, "lawyer-1")
	require.NoError(t, err)
	assert.Equal(t, models.ProfilePendingReview, res.Status)

	profile, err = f.svc.Approve(ctx, "admin-1", "lawyer-1")
	require.NoError(t, err)
	assert.Empty(t, profile.RejectionReason)
}

func TestSuspendFromAnyState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	submitted(t, f, "lawyer-1")
	_, err := f.svc.Approve(ctx, "admin-1", "lawyer-1")
	require.NoError(t, err)

	profile, err := f.svc.Suspend(ctx, "admin-1", "lawyer-1", "Complaint under investigation")
	require.NoError(t, err)
	assert.Equal(t, models.ProfileSuspended, profile.Status)

	_, err = f.svc.Suspend(ctx, "admin-1", "lawyer-1", "again")
	var transition *InvalidTransitionError
	assert.True(t, errors.As(err, &transition))

	_, err = f.svc.SaveStep(ctx, "lawyer-1", StepPersonalInfo, personalPayload())
	var locked *ProfileLockedError
	assert.True(t, errors.As(err, &locked))

	_, err = f.svc.SubmitForReview(ctx, "lawyer-1")
	var already *AlreadySubmittedError
	assert.True(t, errors.As(err, &already))

	assert.Contains(t, f.audit.actions(), "profile_suspended")
}
