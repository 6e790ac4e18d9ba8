package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	accountRepo "lexmarket/database/repository/account"
	"lexmarket/models"
	"lexmarket/services/events"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAccounts struct {
	accountRepo.AccountRepository
	accounts map[string]models.Account
}

func (s stubAccounts) GetByID(_ context.Context, id string) (*models.Account, error) {
	a, ok := s.accounts[id]
	if !ok {
		return nil, accountRepo.ErrAccountNotFound
	}
	return &a, nil
}

type recordingSender struct {
	sent []*messaging.Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.sent = append(r.sent, m)
	return "msg-1", nil
}

func newService(t *testing.T, sender *recordingSender) *DefaultNotificationService {
	t.Helper()
	accounts := stubAccounts{accounts: map[string]models.Account{
		"lawyer-1": {ID: "lawyer-1", Role: models.RoleLawyer, FCMToken: "tok-1"},
		"lawyer-2": {ID: "lawyer-2", Role: models.RoleLawyer},
	}}
	svc, err := NewDefaultNotificationService(accounts, sender)
	require.NoError(t, err)
	return svc
}

func TestNotifyProfileReviewedRejected(t *testing.T) {
	sender := &recordingSender{}
	svc := newService(t, sender)

	err := svc.NotifyProfileReviewed(context.Background(), events.ProfileReviewedPayload{
		AccountID:  "lawyer-1",
		Status:     models.ProfileRejected,
		Reason:     "certificate is unreadable",
		ReviewedAt: time.Now(),
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "tok-1", msg.Token)
	assert.Equal(t, "Your profile needs changes", msg.Notification.Title)
	assert.Contains(t, msg.Notification.Body, "certificate is unreadable")
	assert.Equal(t, "rejected", msg.Data["status"])
	assert.Equal(t, "lawyer", msg.Data["role"])
}

func TestNotifyOnboardingSubmitted(t *testing.T) {
	sender := &recordingSender{}
	svc := newService(t, sender)

	require.NoError(t, svc.NotifyOnboardingSubmitted(context.Background(), events.OnboardingCompletedPayload{AccountID: "lawyer-1"}))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "onboarding_submitted", sender.sent[0].Data["type"])
}

func TestSendWithoutTokenOrAccount(t *testing.T) {
	sender := &recordingSender{}
	svc := newService(t, sender)

	err := svc.SendAccountPushNotification(context.Background(), "lawyer-2", "t", "b", nil)
	assert.ErrorIs(t, err, ErrNoDeviceToken)

	err = svc.SendAccountPushNotification(context.Background(), "missing", "t", "b", nil)
	assert.ErrorIs(t, err, accountRepo.ErrAccountNotFound)
	assert.Empty(t, sender.sent)
}

func TestSendFailureIsWrapped(t *testing.T) {
	sender := &recordingSender{err: errors.New("unavailable")}
	svc := newService(t, sender)

	err := svc.SendAccountPushNotification(context.Background(), "lawyer-1", "t", "b", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unavailable")
}
