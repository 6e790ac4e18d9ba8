package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lexmarket/config"
	"lexmarket/services/events"
	"lexmarket/services/notification"
	"lexmarket/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Notifier is the part of the notification service the worker needs.
type Notifier interface {
	NotifyOnboardingSubmitted(ctx context.Context, payload events.OnboardingCompletedPayload) error
	NotifyProfileReviewed(ctx context.Context, payload events.ProfileReviewedPayload) error
}

// NewMux routes every onboarding event type to its handler. notifier may be nil,
// in which case events are only logged.
func NewMux(notifier Notifier) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(events.TypeStepCompleted, handleStepCompleted)
	mux.HandleFunc(events.TypeOnboardingCompleted, handleOnboardingCompleted(notifier))
	mux.HandleFunc(events.TypeProfileReviewed, handleProfileReviewed(notifier))
	return mux
}

// Start runs the event worker in the background and returns the server so the
// caller can shut it down.
func Start(cfg *config.Config, notifier Notifier) *asynq.Server {
	concurrency := cfg.WorkerConcurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(
		events.RedisOpt(cfg),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				events.QueueName: 1,
			},
		},
	)
	mux := NewMux(notifier)

	go func() {
		logger := utils.GetLogger()
		logger.Info("Starting onboarding event worker", zap.Int("concurrency", concurrency))
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Event worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("Event worker: max retry attempts reached")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

func decode(task *asynq.Task, out interface{}) error {
	if err := json.Unmarshal(task.Payload(), out); err != nil {
		utils.GetLogger().Error("Invalid event payload", zap.String("type", task.Type()), zap.Error(err))
		return fmt.Errorf("%s: %v: %w", task.Type(), err, asynq.SkipRetry)
	}
	return nil
}

func handleStepCompleted(_ context.Context, task *asynq.Task) error {
	var p events.StepCompletedPayload
	if err := decode(task, &p); err != nil {
		return err
	}
	utils.GetLogger().Info("Onboarding step completed",
		zap.String("accountID", p.AccountID),
		zap.String("step", p.Step),
		zap.Int("overallProgress", p.OverallProgress),
		zap.Time("completedAt", p.CompletedAt),
	)
	return nil
}

func handleOnboardingCompleted(notifier Notifier) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p events.OnboardingCompletedPayload
		if err := decode(task, &p); err != nil {
			return err
		}
		utils.GetLogger().Info("Onboarding submitted for review",
			zap.String("accountID", p.AccountID), zap.Time("submittedAt", p.SubmittedAt))
		if notifier == nil {
			return nil
		}
		return pushResult(p.AccountID, notifier.NotifyOnboardingSubmitted(ctx, p))
	}
}

func handleProfileReviewed(notifier Notifier) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p events.ProfileReviewedPayload
		if err := decode(task, &p); err != nil {
			return err
		}
		utils.GetLogger().Info("Profile reviewed",
			zap.String("accountID", p.AccountID),
			zap.String("reviewerID", p.ReviewerID),
			zap.String("status", string(p.Status)),
		)
		if notifier == nil {
			return nil
		}
		return pushResult(p.AccountID, notifier.NotifyProfileReviewed(ctx, p))
	}
}

// pushResult retries transport failures; an account with no device is final.
func pushResult(accountID string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, notification.ErrNoDeviceToken) {
		utils.GetLogger().Info("Skipping push: no device registered", zap.String("accountID", accountID))
		return nil
	}
	utils.GetLogger().Error("Failed to send push notification", zap.String("accountID", accountID), zap.Error(err))
	return err
}
