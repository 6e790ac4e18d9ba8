package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"lexmarket/models"
	"lexmarket/services/events"
	"lexmarket/services/notification"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type stubNotifier struct {
	submitted []events.OnboardingCompletedPayload
	reviewed  []events.ProfileReviewedPayload
	err       error
}

func (s *stubNotifier) NotifyOnboardingSubmitted(_ context.Context, p events.OnboardingCompletedPayload) error {
	s.submitted = append(s.submitted, p)
	return s.err
}

func (s *stubNotifier) NotifyProfileReviewed(_ context.Context, p events.ProfileReviewedPayload) error {
	s.reviewed = append(s.reviewed, p)
	return s.err
}

func task(t *testing.T, typ string, payload interface{}) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(typ, data)
}

func TestMuxDispatchesReviewedEvent(t *testing.T) {
	defer goleak.VerifyNone(t)
	n := &stubNotifier{}
	mux := NewMux(n)

	err := mux.ProcessTask(context.Background(), task(t, events.TypeProfileReviewed, events.ProfileReviewedPayload{
		AccountID: "lawyer-1",
		Status:    models.ProfileVerified,
	}))
	require.NoError(t, err)
	require.Len(t, n.reviewed, 1)
	assert.Equal(t, models.ProfileVerified, n.reviewed[0].Status)
}

func TestMuxDispatchesSubmittedEvent(t *testing.T) {
	n := &stubNotifier{}
	mux := NewMux(n)

	require.NoError(t, mux.ProcessTask(context.Background(), task(t, events.TypeOnboardingCompleted,
		events.OnboardingCompletedPayload{AccountID: "lawyer-1"})))
	require.Len(t, n.submitted, 1)
	assert.Equal(t, "lawyer-1", n.submitted[0].AccountID)
}

func TestStepCompletedOnlyLogs(t *testing.T) {
	n := &stubNotifier{}
	mux := NewMux(n)

	require.NoError(t, mux.ProcessTask(context.Background(), task(t, events.TypeStepCompleted,
		events.StepCompletedPayload{AccountID: "lawyer-1", Step: "documents", OverallProgress: 75})))
	assert.Empty(t, n.submitted)
	assert.Empty(t, n.reviewed)
}

func TestMissingDeviceIsNotRetried(t *testing.T) {
	n := &stubNotifier{err: fmt.Errorf("wrapped: %w", notification.ErrNoDeviceToken)}
	mux := NewMux(n)

	err := mux.ProcessTask(context.Background(), task(t, events.TypeOnboardingCompleted,
		events.OnboardingCompletedPayload{AccountID: "lawyer-1"}))
	assert.NoError(t, err)
}

func TestSendFailureIsRetried(t *testing.T) {
	n := &stubNotifier{err: errors.New("fcm unavailable")}
	mux := NewMux(n)

	err := mux.ProcessTask(context.Background(), task(t, events.TypeProfileReviewed,
		events.ProfileReviewedPayload{AccountID: "lawyer-1", Status: models.ProfileRejected}))
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestInvalidPayloadSkipsRetry(t *testing.T) {
	mux := NewMux(nil)

	err := mux.ProcessTask(context.Background(), asynq.NewTask(events.TypeProfileReviewed, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestNilNotifierLogsOnly(t *testing.T) {
	mux := NewMux(nil)
	assert.NoError(t, mux.ProcessTask(context.Background(), task(t, events.TypeOnboardingCompleted,
		events.OnboardingCompletedPayload{AccountID: "lawyer-1"})))
}
