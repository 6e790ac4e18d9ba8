package onboarding

import (
	"context"

	"lexmarket/models"
)

const StepPersonalInfo = "personal_info"

type personalInfo struct {
	PhoneNumber   string `mapstructure:"phone_number" validate:"required,phone"`
	CountryID     string `mapstructure:"country_id" validate:"required"`
	StateID       string `mapstructure:"state_id" validate:"required"`
	CityID        string `mapstructure:"city_id" validate:"required"`
	OfficeAddress string `mapstructure:"office_address" validate:"required,max=500"`
	Bio           string `mapstructure:"bio" validate:"omitempty,max=1000"`
}

// PersonalInfoStep owns the account contact fields plus office address and bio.
type PersonalInfoStep struct{}

func (PersonalInfoStep) Rules() []FieldRule { return rulesFor(personalInfo{}) }

func (PersonalInfoStep) Validate(payload StepPayload) error {
	var in personalInfo
	return decodeFields(StepPersonalInfo, payload, &in)
}

func (PersonalInfoStep) IsComplete(profile *models.Profile, account *models.Account) bool {
	return account.PhoneNumber != "" &&
		account.CountryID != "" &&
		account.StateID != "" &&
		account.CityID != "" &&
		profile.OfficeAddress != ""
}

func (PersonalInfoStep) CompletionPercentage(profile *models.Profile, account *models.Account) int {
	return filledPercent(
		account.PhoneNumber != "",
		account.CountryID != "",
		account.StateID != "",
		account.CityID != "",
		profile.OfficeAddress != "",
	)
}

func (PersonalInfoStep) Persist(ctx context.Context, env *StepEnv, payload StepPayload) (map[string]interface{}, error) {
	var in personalInfo
	if err := decodeFields(StepPersonalInfo, payload, &in); err != nil {
		return nil, err
	}

	verr := &ValidationError{Step: StepPersonalInfo, Fields: map[string]string{}}
	if err := checkReferences(ctx, env.References, verr, "country_id", models.KindCountry, in.CountryID); err != nil {
		return nil, err
	}
	if err := checkReferences(ctx, env.References, verr, "state_id", models.KindState, in.StateID); err != nil {
		return nil, err
	}
	if err := checkReferences(ctx, env.References, verr, "city_id", models.KindCity, in.CityID); err != nil {
		return nil, err
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	env.Account.PhoneNumber = in.PhoneNumber
	env.Account.CountryID = in.CountryID
	env.Account.StateID = in.StateID
	env.Account.CityID = in.CityID
	env.ContactChanged = true

	env.Profile.OfficeAddress = in.OfficeAddress
	env.Profile.Bio = in.Bio

	return copyFields(payload.Fields), nil
}

func (PersonalInfoStep) Data(profile *models.Profile, account *models.Account) map[string]interface{} {
	return map[string]interface{}{
		"phone_number":   account.PhoneNumber,
		"country_id":     account.CountryID,
		"state_id":       account.StateID,
		"city_id":        account.CityID,
		"office_address": profile.OfficeAddress,
		"bio":            profile.Bio,
	}
}
