package events

import (
	"context"
	"time"

	"lexmarket/models"
)

// Task types published on the onboarding queue.
const (
	TypeStepCompleted       = "onboarding:step_completed"
	TypeOnboardingCompleted = "onboarding:completed"
	TypeProfileReviewed     = "onboarding:reviewed"
)

// Publisher hands events to the background worker.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

type StepCompletedPayload struct {
	AccountID       string    `json:"accountId"`
	Step            string    `json:"step"`
	OverallProgress int       `json:"overallProgress"`
	CompletedAt     time.Time `json:"completedAt"`
}

type OnboardingCompletedPayload struct {
	AccountID   string    `json:"accountId"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type ProfileReviewedPayload struct {
	AccountID  string               `json:"accountId"`
	ReviewerID string               `json:"reviewerId"`
	Status     models.ProfileStatus `json:"status"`
	Reason     string               `json:"reason,omitempty"`
	ReviewedAt time.Time            `json:"reviewedAt"`
}
