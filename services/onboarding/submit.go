package onboarding

import (
	"context"
	"fmt"

	"lexmarket/models"
	"lexmarket/services/events"
	"lexmarket/utils"

	"go.uber.org/zap"
)

const estimatedReviewTime = "24-48 hours"

// SubmitForReview moves a fully onboarded profile to pending_review. The
// status write is conditional on in_progress, so of two concurrent calls
// exactly one succeeds and the other reports AlreadySubmittedError.
func (s *DefaultOnboardingService) SubmitForReview(ctx context.Context, accountID string) (*SubmitResult, error) {
	if _, err := s.lawyer(ctx, accountID); err != nil {
		return nil, err
	}

	profile, err := s.profileFor(ctx, accountID, false)
	if err != nil {
		logFailure("SubmitForReview", accountID, "", err)
		return nil, err
	}
	if profile.Status.IsSubmitted() {
		err := &AlreadySubmittedError{Status: profile.Status}
		logFailure("SubmitForReview", accountID, "", err)
		return nil, err
	}

	records, err := s.Steps.ListByAccount(ctx, accountID)
	if err != nil {
		logFailure("SubmitForReview", accountID, "", err)
		return nil, fmt.Errorf("failed to load step records: %w", err)
	}
	if missing := s.Tracker.MissingRequiredSteps(records); len(missing) > 0 {
		err := &IncompleteProfileError{MissingSteps: missing}
		logFailure("SubmitForReview", accountID, "", err)
		return nil, err
	}

	now := s.now()
	err = s.Tx.WithTransaction(ctx, func(tx context.Context) error {
		ok, err := s.Profiles.UpdateStatusIf(tx, accountID, models.StatusChange{
			From:        []models.ProfileStatus{models.ProfileInProgress},
			To:          models.ProfilePendingReview,
			At:          now,
			SubmittedAt: &now,
		})
		if err != nil {
			return fmt.Errorf("failed to submit profile: %w", err)
		}
		if ok {
			return nil
		}
		current, err := s.Profiles.GetByAccountID(tx, accountID)
		if err != nil {
			return fmt.Errorf("failed to reload profile: %w", err)
		}
		if current.Status.IsSubmitted() {
			return &AlreadySubmittedError{Status: current.Status}
		}
		return &InvalidTransitionError{From: current.Status, To: models.ProfilePendingReview}
	})
	if err != nil {
		logFailure("SubmitForReview", accountID, "", err)
		return nil, err
	}

	utils.GetLogger().Info("Lawyer profile submitted for review",
		zap.String("accountID", accountID),
		zap.String("profileID", profile.ID))
	s.publish(ctx, events.TypeOnboardingCompleted, events.OnboardingCompletedPayload{
		AccountID:   accountID,
		SubmittedAt: now,
	})
	s.audit(ctx, accountID, accountID, "onboarding_submitted", map[string]interface{}{
		"profileId": profile.ID,
	})
	return &SubmitResult{
		Status:              models.ProfilePendingReview,
		SubmittedAt:         now,
		EstimatedReviewTime: estimatedReviewTime,
	}, nil
}
