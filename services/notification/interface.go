package notification

import (
	"context"
	"errors"
	"fmt"

	accountRepo "lexmarket/database/repository/account"
	"lexmarket/models"
	"lexmarket/services/events"
	"lexmarket/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// ErrNoDeviceToken is returned when the account never registered a device.
var ErrNoDeviceToken = errors.New("account has no FCM token")

// Sender delivers one FCM message. *messaging.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendAccountPushNotification(ctx context.Context, accountID, title, body string, data map[string]string) error
	NotifyOnboardingSubmitted(ctx context.Context, payload events.OnboardingCompletedPayload) error
	NotifyProfileReviewed(ctx context.Context, payload events.ProfileReviewedPayload) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	accounts accountRepo.AccountRepository
	sender   Sender
}

func NewDefaultNotificationService(accounts accountRepo.AccountRepository, sender Sender) (*DefaultNotificationService, error) {
	if accounts == nil || sender == nil {
		return nil, fmt.Errorf("notification service initialization error: account repo or sender is nil")
	}
	return &DefaultNotificationService{accounts: accounts, sender: sender}, nil
}

// SendAccountPushNotification looks up an account's FCM token and sends a push.
func (s *DefaultNotificationService) SendAccountPushNotification(
	ctx context.Context,
	accountID, title, body string,
	data map[string]string,
) error {
	acc, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("SendAccountPushNotification: could not find account %s: %w", accountID, err)
	}
	if acc.FCMToken == "" {
		return ErrNoDeviceToken
	}

	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = string(acc.Role)
	}

	msg := &messaging.Message{
		Token: acc.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	response, err := s.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendAccountPushNotification: failed to send FCM message: %w", err)
	}
	utils.GetLogger().Debug("Push notification sent", zap.String("accountID", accountID), zap.String("messageID", response))
	return nil
}

func (s *DefaultNotificationService) NotifyOnboardingSubmitted(ctx context.Context, p events.OnboardingCompletedPayload) error {
	return s.SendAccountPushNotification(ctx, p.AccountID,
		"Profile submitted for review",
		"Thanks! Our team will review your credentials within 24-48 hours.",
		map[string]string{"type": "onboarding_submitted"},
	)
}

func (s *DefaultNotificationService) NotifyProfileReviewed(ctx context.Context, p events.ProfileReviewedPayload) error {
	title, body := reviewMessage(p.Status, p.Reason)
	return s.SendAccountPushNotification(ctx, p.AccountID, title, body, map[string]string{
		"type":   "profile_reviewed",
		"status": string(p.Status),
	})
}

func reviewMessage(status models.ProfileStatus, reason string) (string, string) {
	switch status {
	case models.ProfileVerified:
		return "Your profile is verified", "Congratulations! Clients can now find and book you."
	case models.ProfileRejected:
		return "Your profile needs changes", withReason("Please update your onboarding details and resubmit.", reason)
	case models.ProfileSuspended:
		return "Your profile has been suspended", withReason("Contact support for more information.", reason)
	default:
		return "Your profile status changed", fmt.Sprintf("Your profile is now %s.", status)
	}
}

func withReason(body, reason string) string {
	if reason == "" {
		return body
	}
	return "Reason: " + reason + ". " + body
}
