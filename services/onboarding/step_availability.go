package onboarding

import (
	"context"
	"time"

	"lexmarket/models"

	"github.com/go-playground/validator/v10"
)

const StepAvailability = "availability"

type dayWindow struct {
	Start string `mapstructure:"start" validate:"required,hhmm"`
	End   string `mapstructure:"end" validate:"required,hhmm"`
}

type availabilityInput struct {
	HourlyRate      *int64                `mapstructure:"hourly_rate" validate:"omitempty,min=1000,max=1000000"`
	ConsultationFee int64                 `mapstructure:"consultation_fee" validate:"required,min=1000,max=100000"`
	Availability    map[string]*dayWindow `mapstructure:"availability" validate:"required,min=1,dive,keys,oneof=monday tuesday wednesday thursday friday saturday sunday,endkeys,omitempty"`
}

// decodeAvailability decodes the payload and requires at least one day that is
// not null. A null day is treated as not offered.
func decodeAvailability(payload StepPayload) (availabilityInput, error) {
	var in availabilityInput
	if err := decodeFields(StepAvailability, payload, &in); err != nil {
		return in, err
	}
	for _, w := range in.Availability {
		if w != nil {
			return in, nil
		}
	}
	return in, newFieldError(StepAvailability, "availability", "must contain at least 1 day")
}

// validateDayWindow requires end strictly after start once both parse.
func validateDayWindow(sl validator.StructLevel) {
	w := sl.Current().Interface().(dayWindow)
	start, err1 := time.Parse("15:04", w.Start)
	end, err2 := time.Parse("15:04", w.End)
	if err1 != nil || err2 != nil {
		return
	}
	if !end.After(start) {
		sl.ReportError(w.End, "end", "End", "after_start", "")
	}
}

// AvailabilityStep owns fees and the weekly consultation schedule.
type AvailabilityStep struct{}

func (AvailabilityStep) Rules() []FieldRule { return rulesFor(availabilityInput{}) }

func (AvailabilityStep) Validate(payload StepPayload) error {
	_, err := decodeAvailability(payload)
	return err
}

func (AvailabilityStep) IsComplete(profile *models.Profile, _ *models.Account) bool {
	return profile.ConsultationFee != nil && len(profile.Availability) > 0
}

func (AvailabilityStep) CompletionPercentage(profile *models.Profile, _ *models.Account) int {
	return filledPercent(profile.ConsultationFee != nil, len(profile.Availability) > 0)
}

func (AvailabilityStep) Persist(_ context.Context, env *StepEnv, payload StepPayload) (map[string]interface{}, error) {
	in, err := decodeAvailability(payload)
	if err != nil {
		return nil, err
	}

	fee := in.ConsultationFee
	env.Profile.ConsultationFee = &fee
	env.Profile.HourlyRate = in.HourlyRate
	schedule := make(map[string]models.TimeWindow, len(in.Availability))
	for day, w := range in.Availability {
		if w == nil {
			continue
		}
		schedule[day] = models.TimeWindow{Start: w.Start, End: w.End}
	}
	env.Profile.Availability = schedule

	return copyFields(payload.Fields), nil
}

func (AvailabilityStep) Data(profile *models.Profile, _ *models.Account) map[string]interface{} {
	return map[string]interface{}{
		"hourly_rate":      profile.HourlyRate,
		"consultation_fee": profile.ConsultationFee,
		"availability":     profile.Availability,
	}
}
