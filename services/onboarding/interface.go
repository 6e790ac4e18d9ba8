package onboarding

import (
	"context"
	"time"

	"lexmarket/models"
)

// OnboardingService is the lawyer-facing onboarding contract.
type OnboardingService interface {
	GetStatus(ctx context.Context, accountID string) (*StatusSnapshot, error)
	ListStepDefinitions() []StepView
	GetStepDefinition(step string) (*StepView, error)
	GetValidationRules(step string) ([]FieldRule, error)
	GetStepData(ctx context.Context, accountID, step string) (*StepDataView, error)
	SaveStep(ctx context.Context, accountID, step string, payload StepPayload) (*SaveResult, error)
	SkipStep(ctx context.Context, accountID, step, reason string) (*SkipResult, error)
	BulkSave(ctx context.Context, accountID string, entries []BulkEntry) (*BulkResult, error)
	SubmitForReview(ctx context.Context, accountID string) (*SubmitResult, error)
}

// ReviewService is the admin-facing verification contract.
type ReviewService interface {
	Approve(ctx context.Context, reviewerID, accountID string) (*models.Profile, error)
	Reject(ctx context.Context, reviewerID, accountID, reason string) (*models.Profile, error)
	Suspend(ctx context.Context, reviewerID, accountID, reason string) (*models.Profile, error)
	PendingReviews(ctx context.Context, limit int64) ([]models.Profile, error)
}

// StatusSnapshot is the aggregate onboarding state of one lawyer.
type StatusSnapshot struct {
	OverallProgress         int                  `json:"overall_progress"`
	CompletedSteps          int                  `json:"completed_steps"`
	SkippedSteps            int                  `json:"skipped_steps"`
	TotalSteps              int                  `json:"total_steps"`
	CurrentStep             string               `json:"current_step,omitempty"`
	Steps                   []StepStatus         `json:"steps"`
	CanSubmit               bool                 `json:"can_submit"`
	MissingSteps            []string             `json:"missing_steps"`
	ProfileStatus           models.ProfileStatus `json:"profile_status"`
	EstimatedCompletionTime string               `json:"estimated_completion_time"`
}

// StepView is a step definition together with its validation contract.
type StepView struct {
	StepDefinition
	ValidationRules []FieldRule `json:"validation_rules"`
}

type StepDataView struct {
	Step        string                 `json:"step"`
	SavedData   map[string]interface{} `json:"saved_data"`
	ProfileData map[string]interface{} `json:"profile_data"`
	IsCompleted bool                   `json:"is_completed"`
	IsSkipped   bool                   `json:"is_skipped"`
	SkipReason  string                 `json:"skip_reason,omitempty"`
}

type SaveResult struct {
	CompletedStep   string `json:"completed_step"`
	NextStep        string `json:"next_step,omitempty"`
	OverallProgress int    `json:"overall_progress"`
	CanSubmit       bool   `json:"can_submit"`
}

type SkipResult struct {
	SkippedStep     string `json:"skipped_step"`
	NextStep        string `json:"next_step,omitempty"`
	OverallProgress int    `json:"overall_progress"`
	CanSubmit       bool   `json:"can_submit"`
}

// BulkEntry is one step submission of a bulk save.
type BulkEntry struct {
	Step    string
	Payload StepPayload
}

type BulkItemResult struct {
	Success bool              `json:"success"`
	Result  *SaveResult       `json:"result,omitempty"`
	Error   string            `json:"error,omitempty"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type BulkSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

type BulkResult struct {
	Results         map[string]BulkItemResult `json:"results"`
	Summary         BulkSummary               `json:"summary"`
	OverallProgress int                       `json:"overall_progress"`
	CanSubmit       bool                      `json:"can_submit"`
}

type SubmitResult struct {
	Status              models.ProfileStatus `json:"status"`
	SubmittedAt         time.Time            `json:"submitted_at"`
	EstimatedReviewTime string               `json:"estimated_review_time"`
}
