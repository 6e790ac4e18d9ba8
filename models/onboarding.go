package models

import "time"

// StepRecord tracks one account's progress on one onboarding step.
// (AccountID, StepName) is unique; records are updated in place and never removed.
type StepRecord struct {
	ID          string                 `bson:"id" json:"id"`
	AccountID   string                 `bson:"accountId" json:"accountId"`
	StepName    string                 `bson:"stepName" json:"stepName"`
	StepData    map[string]interface{} `bson:"stepData" json:"stepData"`
	IsCompleted bool                   `bson:"isCompleted" json:"isCompleted"`
	IsSkipped   bool                   `bson:"isSkipped" json:"isSkipped"`
	SkipReason  string                 `bson:"skipReason,omitempty" json:"skipReason,omitempty"`
	CompletedAt *time.Time             `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// Resolved reports whether the step is either completed or skipped.
func (r *StepRecord) Resolved() bool {
	return r != nil && (r.IsCompleted || r.IsSkipped)
}

// MarkCompleted merges data into the stored snapshot (last write wins per key)
// and flags the record completed.
func (r *StepRecord) MarkCompleted(data map[string]interface{}, at time.Time) {
	merged := make(map[string]interface{}, len(r.StepData)+len(data))
	for k, v := range r.StepData {
		merged[k] = v
	}
	for k, v := range data {
		merged[k] = v
	}
	r.StepData = merged
	r.IsCompleted = true
	r.IsSkipped = false
	r.SkipReason = ""
	r.CompletedAt = &at
	r.UpdatedAt = at
}

// MarkSkipped flags the record skipped, keeping any previously saved snapshot.
func (r *StepRecord) MarkSkipped(reason string, at time.Time) {
	if r.StepData == nil {
		r.StepData = map[string]interface{}{}
	}
	r.IsSkipped = true
	r.IsCompleted = false
	r.SkipReason = reason
	r.CompletedAt = nil
	r.UpdatedAt = at
}
