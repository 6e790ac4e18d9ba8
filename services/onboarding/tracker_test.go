package onboarding

import (
	"testing"
	"time"

	"lexmarket/models"

	"github.com/stretchr/testify/assert"
)

func completed(step string) models.StepRecord {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return models.StepRecord{StepName: step, IsCompleted: true, CompletedAt: &at}
}

func skipped(step string) models.StepRecord {
	return models.StepRecord{StepName: step, IsSkipped: true, SkipReason: "later"}
}

func TestTrackerProgress(t *testing.T) {
	tr := NewTracker(DefaultRegistry())

	cases := []struct {
		name    string
		records []models.StepRecord
		want    int
		current string
		submit  bool
	}{
		{"none", nil, 0, StepPersonalInfo, false},
		{"one of four", []models.StepRecord{completed(StepPersonalInfo)}, 25, StepProfessionalInfo, false},
		{"two of four", []models.StepRecord{completed(StepPersonalInfo), completed(StepProfessionalInfo)}, 50, StepDocuments, false},
		{"skip counts toward progress", []models.StepRecord{
			completed(StepPersonalInfo), completed(StepProfessionalInfo), skipped(StepAvailability),
		}, 75, StepDocuments, false},
		{"all resolved", []models.StepRecord{
			completed(StepPersonalInfo), completed(StepProfessionalInfo), completed(StepDocuments), skipped(StepAvailability),
		}, 100, "", true},
		{"required done, optional open", []models.StepRecord{
			completed(StepPersonalInfo), completed(StepProfessionalInfo), completed(StepDocuments),
		}, 75, StepAvailability, true},
		{"unregistered records ignored", []models.StepRecord{completed("practice_areas")}, 0, StepPersonalInfo, false},
		{"untouched record is unresolved", []models.StepRecord{{StepName: StepPersonalInfo}}, 0, StepPersonalInfo, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tr.OverallProgress(tc.records))
			assert.Equal(t, tc.current, tr.CurrentStep(tc.records))
			assert.Equal(t, tc.submit, tr.CanSubmit(tc.records))
		})
	}
}

func TestSkippedRequiredStepDoesNotSatisfySubmission(t *testing.T) {
	tr := NewTracker(DefaultRegistry())
	records := []models.StepRecord{completed(StepPersonalInfo), skipped(StepProfessionalInfo), completed(StepDocuments)}

	assert.False(t, tr.CanSubmit(records))
	assert.Equal(t, []string{"Professional Credentials"}, tr.MissingRequiredSteps(records))
}

func TestStatusForFollowsRegistryOrder(t *testing.T) {
	tr := NewTracker(DefaultRegistry())
	profile := models.NewProfile("p1", "a1", time.Now())
	profile.OfficeAddress = "Somewhere"
	account := &models.Account{ID: "a1", PhoneNumber: "+234801", CountryID: "ng"}

	statuses := tr.StatusFor([]models.StepRecord{skipped(StepAvailability), completed(StepPersonalInfo)}, profile, account)

	assert.Len(t, statuses, 4)
	assert.Equal(t, StepPersonalInfo, statuses[0].Name)
	assert.True(t, statuses[0].IsCompleted)
	assert.NotNil(t, statuses[0].CompletedAt)
	assert.Equal(t, 60, statuses[0].CompletionPercentage)
	assert.True(t, statuses[3].IsSkipped)
	assert.Nil(t, statuses[3].CompletedAt)
}

func TestRoundPercentRoundsHalfUp(t *testing.T) {
	assert.Equal(t, 33, roundPercent(1, 3))
	assert.Equal(t, 67, roundPercent(2, 3))
	assert.Equal(t, 17, roundPercent(1, 6))
	assert.Equal(t, 13, roundPercent(1, 8))
	assert.Equal(t, 0, roundPercent(0, 0))
	assert.Equal(t, 100, roundPercent(5, 5))
}

func TestEstimateCompletionTime(t *testing.T) {
	assert.Equal(t, "Ready for submission", EstimateCompletionTime(Progress{Total: 4, Completed: 3, Skipped: 1}))
	assert.Equal(t, "5 minutes", EstimateCompletionTime(Progress{Total: 4, Completed: 3}))
	assert.Equal(t, "1 hour", EstimateCompletionTime(Progress{Total: 12}))
	assert.Equal(t, "1.5 hours", EstimateCompletionTime(Progress{Total: 18}))
	assert.Equal(t, "1.1 hours", EstimateCompletionTime(Progress{Total: 13}))
}
