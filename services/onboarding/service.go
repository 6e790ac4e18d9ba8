package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lexmarket/database"
	accountRepo "lexmarket/database/repository/account"
	auditRepo "lexmarket/database/repository/audit"
	profileRepo "lexmarket/database/repository/profile"
	stepsRepo "lexmarket/database/repository/steps"
	taxonomyRepo "lexmarket/database/repository/taxonomy"
	"lexmarket/models"
	"lexmarket/services/events"
	"lexmarket/services/storage"
	"lexmarket/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Deps groups the collaborators of DefaultOnboardingService.
type Deps struct {
	Registry       *Registry
	Accounts       accountRepo.AccountRepository
	Profiles       profileRepo.ProfileRepository
	Steps          stepsRepo.StepRecordRepository
	Taxonomy       taxonomyRepo.TaxonomyRepository
	Audit          auditRepo.AuditLogRepository
	Tx             database.Transactor
	Documents      storage.DocumentStore
	Events         events.Publisher
	DocumentFolder string
	Now            func() time.Time
}

// DefaultOnboardingService is the production implementation of
// OnboardingService and ReviewService.
type DefaultOnboardingService struct {
	Registry       *Registry
	Tracker        *Tracker
	Accounts       accountRepo.AccountRepository
	Profiles       profileRepo.ProfileRepository
	Steps          stepsRepo.StepRecordRepository
	Taxonomy       taxonomyRepo.TaxonomyRepository
	Audit          auditRepo.AuditLogRepository
	Tx             database.Transactor
	Documents      storage.DocumentStore
	Events         events.Publisher
	DocumentFolder string
	now            func() time.Time
}

func NewDefaultOnboardingService(d Deps) (*DefaultOnboardingService, error) {
	if d.Accounts == nil || d.Profiles == nil || d.Steps == nil || d.Tx == nil {
		return nil, fmt.Errorf("onboarding service initialization error: one or more dependencies are nil")
	}
	if d.Registry == nil {
		d.Registry = DefaultRegistry()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &DefaultOnboardingService{
		Registry:       d.Registry,
		Tracker:        NewTracker(d.Registry),
		Accounts:       d.Accounts,
		Profiles:       d.Profiles,
		Steps:          d.Steps,
		Taxonomy:       d.Taxonomy,
		Audit:          d.Audit,
		Tx:             d.Tx,
		Documents:      d.Documents,
		Events:         d.Events,
		DocumentFolder: d.DocumentFolder,
		now:            d.Now,
	}, nil
}

// lawyer loads the account and rejects any non-lawyer role.
func (s *DefaultOnboardingService) lawyer(ctx context.Context, accountID string) (*models.Account, error) {
	account, err := s.Accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, accountRepo.ErrAccountNotFound) {
			return nil, &NotLawyerError{AccountID: accountID}
		}
		utils.GetLogger().Error("Onboarding: failed to load account", zap.String("accountID", accountID), zap.Error(err))
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if !account.IsLawyer() {
		return nil, &NotLawyerError{AccountID: accountID}
	}
	return account, nil
}

// profileFor returns the account's profile. A missing profile is created
// when create is set, otherwise an unsaved empty profile is returned.
func (s *DefaultOnboardingService) profileFor(ctx context.Context, accountID string, create bool) (*models.Profile, error) {
	profile, err := s.Profiles.GetByAccountID(ctx, accountID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, profileRepo.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	profile = models.NewProfile(uuid.New().String(), accountID, s.now())
	if create {
		if err := s.Profiles.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
	}
	return profile, nil
}

func (s *DefaultOnboardingService) GetStatus(ctx context.Context, accountID string) (*StatusSnapshot, error) {
	account, err := s.lawyer(ctx, accountID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileFor(ctx, accountID, false)
	if err != nil {
		utils.GetLogger().Error("GetStatus: failed to load profile", zap.String("accountID", accountID), zap.Error(err))
		return nil, err
	}
	records, err := s.Steps.ListByAccount(ctx, accountID)
	if err != nil {
		utils.GetLogger().Error("GetStatus: failed to load step records", zap.String("accountID", accountID), zap.Error(err))
		return nil, fmt.Errorf("failed to load step records: %w", err)
	}
	return s.snapshot(records, profile, account), nil
}

func (s *DefaultOnboardingService) snapshot(records []models.StepRecord, profile *models.Profile, account *models.Account) *StatusSnapshot {
	progress := s.Tracker.Progress(records)
	missing := s.Tracker.MissingRequiredSteps(records)
	return &StatusSnapshot{
		OverallProgress:         progress.Percentage,
		CompletedSteps:          progress.Completed,
		SkippedSteps:            progress.Skipped,
		TotalSteps:              progress.Total,
		CurrentStep:             s.Tracker.CurrentStep(records),
		Steps:                   s.Tracker.StatusFor(records, profile, account),
		CanSubmit:               len(missing) == 0,
		MissingSteps:            missing,
		ProfileStatus:           profile.Status,
		EstimatedCompletionTime: EstimateCompletionTime(progress),
	}
}

func (s *DefaultOnboardingService) view(def StepDefinition) StepView {
	return StepView{StepDefinition: def, ValidationRules: def.Handler.Rules()}
}

func (s *DefaultOnboardingService) ListStepDefinitions() []StepView {
	defs := s.Registry.Steps()
	out := make([]StepView, 0, len(defs))
	for _, def := range defs {
		out = append(out, s.view(def))
	}
	return out
}

func (s *DefaultOnboardingService) GetStepDefinition(step string) (*StepView, error) {
	def, err := s.Registry.Step(step)
	if err != nil {
		return nil, err
	}
	v := s.view(def)
	return &v, nil
}

func (s *DefaultOnboardingService) GetValidationRules(step string) ([]FieldRule, error) {
	handler, err := s.Registry.Handler(step)
	if err != nil {
		return nil, err
	}
	return handler.Rules(), nil
}

func (s *DefaultOnboardingService) GetStepData(ctx context.Context, accountID, step string) (*StepDataView, error) {
	account, err := s.lawyer(ctx, accountID)
	if err != nil {
		return nil, err
	}
	handler, err := s.Registry.Handler(step)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileFor(ctx, accountID, false)
	if err != nil {
		utils.GetLogger().Error("GetStepData: failed to load profile", zap.String("accountID", accountID), zap.Error(err))
		return nil, err
	}
	record, err := s.Steps.Get(ctx, accountID, step)
	if err != nil {
		utils.GetLogger().Error("GetStepData: failed to load step record", zap.String("accountID", accountID), zap.String("step", step), zap.Error(err))
		return nil, fmt.Errorf("failed to load step record: %w", err)
	}

	view := &StepDataView{
		Step:        step,
		SavedData:   map[string]interface{}{},
		ProfileData: handler.Data(profile, account),
	}
	if record != nil {
		if record.StepData != nil {
			view.SavedData = record.StepData
		}
		view.IsCompleted = record.IsCompleted
		view.IsSkipped = record.IsSkipped
		view.SkipReason = record.SkipReason
	}
	return view, nil
}

// publish and audit run after commit. Their failures are logged and dropped.
func (s *DefaultOnboardingService) publish(ctx context.Context, eventType string, payload interface{}) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, eventType, payload); err != nil {
		utils.GetLogger().Warn("Onboarding: failed to publish event", zap.String("event", eventType), zap.Error(err))
	}
}

func (s *DefaultOnboardingService) audit(ctx context.Context, accountID, actorID, action string, metadata map[string]interface{}) {
	if s.Audit == nil {
		return
	}
	entry := models.AuditLog{
		ID:        uuid.New().String(),
		AccountID: accountID,
		ActorID:   actorID,
		Action:    action,
		Metadata:  metadata,
		CreatedAt: s.now(),
	}
	if _, err := s.Audit.Create(ctx, entry); err != nil {
		utils.GetLogger().Warn("Onboarding: failed to write audit log", zap.String("action", action), zap.String("accountID", accountID), zap.Error(err))
	}
}

// logFailure logs business-rule errors as warnings and everything else as errors.
func logFailure(op, accountID, step string, err error) {
	fields := []zap.Field{zap.String("accountID", accountID), zap.Error(err)}
	if step != "" {
		fields = append(fields, zap.String("step", step))
	}
	var coded CodedError
	if errors.As(err, &coded) {
		utils.GetLogger().Warn(op+": rejected", append(fields, zap.String("code", coded.Code()))...)
		return
	}
	utils.GetLogger().Error(op+": failed", fields...)
}
