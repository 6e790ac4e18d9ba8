package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	profileRepo "lexmarket/database/repository/profile"
	"lexmarket/models"
	"lexmarket/services/events"
	"lexmarket/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stepRecord returns the stored record or a new unsaved one.
func (s *DefaultOnboardingService) stepRecord(ctx context.Context, accountID, step string, now time.Time) (*models.StepRecord, error) {
	record, err := s.Steps.Get(ctx, accountID, step)
	if err != nil {
		return nil, fmt.Errorf("failed to load step record: %w", err)
	}
	if record == nil {
		record = &models.StepRecord{
			ID:        uuid.New().String(),
			AccountID: accountID,
			StepName:  step,
			StepData:  map[string]interface{}{},
			CreatedAt: now,
		}
	}
	return record, nil
}

// editableProfile loads the profile inside a transaction and refuses locked ones.
func (s *DefaultOnboardingService) editableProfile(ctx context.Context, accountID string) (*models.Profile, error) {
	profile, err := s.profileFor(ctx, accountID, true)
	if err != nil {
		return nil, err
	}
	if !profile.Status.CanEdit() {
		return nil, &ProfileLockedError{Status: profile.Status}
	}
	return profile, nil
}

// settle writes the profile after a step record changed and returns the
// fresh record list. Any resolved step moves an editable profile to in_progress.
func (s *DefaultOnboardingService) settle(ctx context.Context, profile *models.Profile, now time.Time) ([]models.StepRecord, error) {
	records, err := s.Steps.ListByAccount(ctx, profile.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load step records: %w", err)
	}
	if s.Tracker.OverallProgress(records) > 0 && profile.Status.CanTransitionTo(models.ProfileInProgress) {
		profile.Status = models.ProfileInProgress
	}
	profile.UpdatedAt = now
	if err := s.Profiles.Update(ctx, profile); err != nil {
		if errors.Is(err, profileRepo.ErrDuplicateEnrollment) {
			return nil, newFieldError(StepProfessionalInfo, "enrollment_number", "has already been taken")
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return records, nil
}

func (s *DefaultOnboardingService) SaveStep(ctx context.Context, accountID, step string, payload StepPayload) (*SaveResult, error) {
	account, err := s.lawyer(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.saveStep(ctx, account, step, payload)
}

func (s *DefaultOnboardingService) saveStep(ctx context.Context, account *models.Account, step string, payload StepPayload) (*SaveResult, error) {
	handler, err := s.Registry.Handler(step)
	if err != nil {
		return nil, err
	}
	now := s.now()
	payload.ReceivedAt = now
	if err := handler.Validate(payload); err != nil {
		logFailure("SaveStep", account.ID, step, err)
		return nil, err
	}

	env := &StepEnv{
		References:     s.Taxonomy,
		Enrollments:    s.Profiles,
		Documents:      s.Documents,
		DocumentFolder: s.DocumentFolder,
	}

	var result *SaveResult
	err = s.Tx.WithTransaction(ctx, func(tx context.Context) error {
		profile, err := s.editableProfile(tx, account.ID)
		if err != nil {
			return err
		}
		acct := *account
		env.Account = &acct
		env.Profile = profile
		env.ContactChanged = false
		env.Replaced = nil

		snapshot, err := handler.Persist(tx, env, payload)
		if err != nil {
			return err
		}
		if env.ContactChanged {
			contact := models.ContactUpdate{
				PhoneNumber: acct.PhoneNumber,
				CountryID:   acct.CountryID,
				StateID:     acct.StateID,
				CityID:      acct.CityID,
			}
			if err := s.Accounts.UpdateContact(tx, acct.ID, contact, now); err != nil {
				return fmt.Errorf("failed to update account contact: %w", err)
			}
		}

		record, err := s.stepRecord(tx, account.ID, step, now)
		if err != nil {
			return err
		}
		record.MarkCompleted(snapshot, now)
		if err := s.Steps.Upsert(tx, record); err != nil {
			return fmt.Errorf("failed to save step record: %w", err)
		}

		records, err := s.settle(tx, profile, now)
		if err != nil {
			return err
		}
		result = &SaveResult{
			CompletedStep:   step,
			NextStep:        s.Tracker.CurrentStep(records),
			OverallProgress: s.Tracker.OverallProgress(records),
			CanSubmit:       s.Tracker.CanSubmit(records),
		}
		return nil
	})
	if err != nil {
		s.discardDocuments(ctx, account.ID, env.Stored)
		logFailure("SaveStep", account.ID, step, err)
		return nil, err
	}
	s.discardDocuments(ctx, account.ID, env.Replaced)

	utils.GetLogger().Info("Onboarding step completed",
		zap.String("accountID", account.ID),
		zap.String("step", step),
		zap.Int("overallProgress", result.OverallProgress))
	s.publish(ctx, events.TypeStepCompleted, events.StepCompletedPayload{
		AccountID:       account.ID,
		Step:            step,
		OverallProgress: result.OverallProgress,
		CompletedAt:     now,
	})
	s.audit(ctx, account.ID, account.ID, "onboarding_step_saved", map[string]interface{}{
		"step":            step,
		"overallProgress": result.OverallProgress,
	})
	return result, nil
}

// discardDocuments removes stored documents no profile points at: uploads of
// a save that did not commit, or references a committed save replaced.
func (s *DefaultOnboardingService) discardDocuments(ctx context.Context, accountID string, refs []string) {
	for _, ref := range refs {
		if err := s.Documents.Delete(ctx, ref); err != nil {
			utils.GetLogger().Warn("SaveStep: failed to remove unreferenced document",
				zap.String("accountID", accountID), zap.String("reference", ref), zap.Error(err))
		}
	}
}

func (s *DefaultOnboardingService) SkipStep(ctx context.Context, accountID, step, reason string) (*SkipResult, error) {
	if _, err := s.lawyer(ctx, accountID); err != nil {
		return nil, err
	}
	def, err := s.Registry.Step(step)
	if err != nil {
		return nil, err
	}
	if !def.Skippable {
		err := &NonSkippableStepError{Step: step}
		logFailure("SkipStep", accountID, step, err)
		return nil, err
	}

	now := s.now()
	var result *SkipResult
	err = s.Tx.WithTransaction(ctx, func(tx context.Context) error {
		profile, err := s.editableProfile(tx, accountID)
		if err != nil {
			return err
		}
		record, err := s.stepRecord(tx, accountID, step, now)
		if err != nil {
			return err
		}
		record.MarkSkipped(reason, now)
		if err := s.Steps.Upsert(tx, record); err != nil {
			return fmt.Errorf("failed to save step record: %w", err)
		}
		records, err := s.settle(tx, profile, now)
		if err != nil {
			return err
		}
		result = &SkipResult{
			SkippedStep:     step,
			NextStep:        s.Tracker.CurrentStep(records),
			OverallProgress: s.Tracker.OverallProgress(records),
			CanSubmit:       s.Tracker.CanSubmit(records),
		}
		return nil
	})
	if err != nil {
		logFailure("SkipStep", accountID, step, err)
		return nil, err
	}

	utils.GetLogger().Info("Onboarding step skipped", zap.String("accountID", accountID), zap.String("step", step))
	s.audit(ctx, accountID, accountID, "onboarding_step_skipped", map[string]interface{}{
		"step":   step,
		"reason": reason,
	})
	return result, nil
}

// BulkSave saves each entry on its own; one failing entry never blocks the rest.
func (s *DefaultOnboardingService) BulkSave(ctx context.Context, accountID string, entries []BulkEntry) (*BulkResult, error) {
	account, err := s.lawyer(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := uniqueBulkSteps(entries); err != nil {
		logFailure("BulkSave", accountID, "", err)
		return nil, err
	}

	out := &BulkResult{Results: make(map[string]BulkItemResult, len(entries))}
	for _, entry := range entries {
		out.Summary.Total++
		res, err := s.saveStep(ctx, account, entry.Step, entry.Payload)
		if err != nil {
			out.Summary.Failed++
			out.Results[entry.Step] = bulkFailure(err)
			continue
		}
		out.Summary.Succeeded++
		out.Results[entry.Step] = BulkItemResult{Success: true, Result: res}
		// Later entries see contact changes made by earlier ones.
		if entry.Step == StepPersonalInfo {
			if refreshed, err := s.Accounts.GetByID(ctx, accountID); err == nil {
				account = refreshed
			}
		}
	}

	records, err := s.Steps.ListByAccount(ctx, accountID)
	if err != nil {
		utils.GetLogger().Error("BulkSave: failed to load step records", zap.String("accountID", accountID), zap.Error(err))
		return nil, fmt.Errorf("failed to load step records: %w", err)
	}
	out.OverallProgress = s.Tracker.OverallProgress(records)
	out.CanSubmit = s.Tracker.CanSubmit(records)
	return out, nil
}

// uniqueBulkSteps rejects a bulk request naming the same step twice, since
// results are reported per step.
func uniqueBulkSteps(entries []BulkEntry) error {
	seen := make(map[string]int, len(entries))
	verr := &ValidationError{Step: "bulk", Fields: map[string]string{}}
	for i, entry := range entries {
		if first, ok := seen[entry.Step]; ok {
			verr.Fields[fmt.Sprintf("steps[%d].step", i)] = fmt.Sprintf("duplicates steps[%d]", first)
			continue
		}
		seen[entry.Step] = i
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func bulkFailure(err error) BulkItemResult {
	item := BulkItemResult{Success: false, Error: err.Error(), Code: "internal_error"}
	var coded CodedError
	if errors.As(err, &coded) {
		item.Code = coded.Code()
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		item.Fields = verr.Fields
	}
	return item
}
