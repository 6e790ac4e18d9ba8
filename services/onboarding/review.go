package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	profileRepo "lexmarket/database/repository/profile"
	"lexmarket/models"
	"lexmarket/services/events"
	"lexmarket/utils"

	"go.uber.org/zap"
)

// suspendable lists every status suspension may start from.
var suspendable = []models.ProfileStatus{
	models.ProfileNotStarted,
	models.ProfileInProgress,
	models.ProfilePendingReview,
	models.ProfileVerified,
	models.ProfileRejected,
}

func (s *DefaultOnboardingService) Approve(ctx context.Context, reviewerID, accountID string) (*models.Profile, error) {
	now := s.now()
	cleared := ""
	return s.review(ctx, reviewerID, accountID, "profile_approved", "", models.StatusChange{
		From:            []models.ProfileStatus{models.ProfilePendingReview},
		To:              models.ProfileVerified,
		At:              now,
		VerifiedAt:      &now,
		RejectionReason: &cleared,
	})
}

func (s *DefaultOnboardingService) Reject(ctx context.Context, reviewerID, accountID, reason string) (*models.Profile, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, newFieldError("review", "reason", "is required")
	}
	return s.review(ctx, reviewerID, accountID, "profile_rejected", reason, models.StatusChange{
		From:            []models.ProfileStatus{models.ProfilePendingReview},
		To:              models.ProfileRejected,
		At:              s.now(),
		RejectionReason: &reason,
	})
}

func (s *DefaultOnboardingService) Suspend(ctx context.Context, reviewerID, accountID, reason string) (*models.Profile, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, newFieldError("review", "reason", "is required")
	}
	return s.review(ctx, reviewerID, accountID, "profile_suspended", reason, models.StatusChange{
		From: suspendable,
		To:   models.ProfileSuspended,
		At:   s.now(),
	})
}

func (s *DefaultOnboardingService) PendingReviews(ctx context.Context, limit int64) ([]models.Profile, error) {
	profiles, err := s.Profiles.ListByStatus(ctx, models.ProfilePendingReview, limit)
	if err != nil {
		utils.GetLogger().Error("PendingReviews: failed to list profiles", zap.Error(err))
		return nil, fmt.Errorf("failed to list pending profiles: %w", err)
	}
	return profiles, nil
}

func (s *DefaultOnboardingService) review(ctx context.Context, reviewerID, accountID, action, reason string, change models.StatusChange) (*models.Profile, error) {
	var updated *models.Profile
	err := s.Tx.WithTransaction(ctx, func(tx context.Context) error {
		ok, err := s.Profiles.UpdateStatusIf(tx, accountID, change)
		if err != nil {
			return fmt.Errorf("failed to update profile status: %w", err)
		}
		current, err := s.Profiles.GetByAccountID(tx, accountID)
		if err != nil {
			if errors.Is(err, profileRepo.ErrProfileNotFound) {
				return err
			}
			return fmt.Errorf("failed to reload profile: %w", err)
		}
		if !ok {
			return &InvalidTransitionError{From: current.Status, To: change.To}
		}
		updated = current
		return nil
	})
	if err != nil {
		logFailure("Review", accountID, "", err)
		return nil, err
	}

	utils.GetLogger().Info("Lawyer profile reviewed",
		zap.String("accountID", accountID),
		zap.String("reviewerID", reviewerID),
		zap.String("status", string(change.To)))
	s.publish(ctx, events.TypeProfileReviewed, events.ProfileReviewedPayload{
		AccountID:  accountID,
		ReviewerID: reviewerID,
		Status:     change.To,
		Reason:     reason,
		ReviewedAt: change.At,
	})
	metadata := map[string]interface{}{"status": string(change.To)}
	if reason != "" {
		metadata["reason"] = reason
	}
	s.audit(ctx, accountID, reviewerID, action, metadata)
	return updated, nil
}
