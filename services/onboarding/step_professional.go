package onboarding

import (
	"context"
	"fmt"

	"lexmarket/models"
)

const StepProfessionalInfo = "professional_info"

type professionalInfo struct {
	EnrollmentNumber string   `mapstructure:"enrollment_number" validate:"required,max=50"`
	YearOfCall       int      `mapstructure:"year_of_call" validate:"required,min=1960,notfuture"`
	LawSchool        string   `mapstructure:"law_school" validate:"required,max=255"`
	GraduationYear   int      `mapstructure:"graduation_year" validate:"required,min=1960,notfuture"`
	PracticeAreas    []string `mapstructure:"practice_areas" validate:"required,min=1,max=5,dive,required"`
	Specializations  []string `mapstructure:"specializations" validate:"omitempty,max=3,dive,required"`
	Languages        []string `mapstructure:"languages" validate:"required,min=1,dive,required"`
}

// ProfessionalInfoStep owns credentials and the practice classification sets.
// Each set is replaced wholesale on save; an omitted optional set becomes empty.
type ProfessionalInfoStep struct{}

func (ProfessionalInfoStep) Rules() []FieldRule { return rulesFor(professionalInfo{}) }

func (ProfessionalInfoStep) Validate(payload StepPayload) error {
	var in professionalInfo
	return decodeFields(StepProfessionalInfo, payload, &in)
}

func (ProfessionalInfoStep) IsComplete(profile *models.Profile, _ *models.Account) bool {
	return profile.EnrollmentNumber != "" &&
		profile.YearOfCall > 0 &&
		profile.LawSchool != "" &&
		profile.GraduationYear > 0 &&
		len(profile.PracticeAreaIDs) > 0 &&
		len(profile.LanguageIDs) > 0
}

func (ProfessionalInfoStep) CompletionPercentage(profile *models.Profile, _ *models.Account) int {
	return filledPercent(
		profile.EnrollmentNumber != "",
		profile.YearOfCall > 0,
		profile.LawSchool != "",
		profile.GraduationYear > 0,
		len(profile.PracticeAreaIDs) > 0,
		len(profile.LanguageIDs) > 0,
	)
}

func (ProfessionalInfoStep) Persist(ctx context.Context, env *StepEnv, payload StepPayload) (map[string]interface{}, error) {
	var in professionalInfo
	if err := decodeFields(StepProfessionalInfo, payload, &in); err != nil {
		return nil, err
	}

	verr := &ValidationError{Step: StepProfessionalInfo, Fields: map[string]string{}}
	if env.Enrollments != nil {
		taken, err := env.Enrollments.EnrollmentNumberTaken(ctx, in.EnrollmentNumber, env.Account.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check enrollment number: %w", err)
		}
		if taken {
			verr.Fields["enrollment_number"] = "has already been taken"
		}
	}
	if err := checkReferences(ctx, env.References, verr, "practice_areas", models.KindPracticeArea, in.PracticeAreas...); err != nil {
		return nil, err
	}
	if err := checkReferences(ctx, env.References, verr, "specializations", models.KindSpecialization, in.Specializations...); err != nil {
		return nil, err
	}
	if err := checkReferences(ctx, env.References, verr, "languages", models.KindLanguage, in.Languages...); err != nil {
		return nil, err
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	p := env.Profile
	p.EnrollmentNumber = in.EnrollmentNumber
	p.YearOfCall = in.YearOfCall
	p.LawSchool = in.LawSchool
	p.GraduationYear = in.GraduationYear
	p.PracticeAreaIDs = uniqueIDs(in.PracticeAreas)
	p.SpecializationIDs = uniqueIDs(in.Specializations)
	p.LanguageIDs = uniqueIDs(in.Languages)

	return copyFields(payload.Fields), nil
}

func (ProfessionalInfoStep) Data(profile *models.Profile, _ *models.Account) map[string]interface{} {
	return map[string]interface{}{
		"enrollment_number": profile.EnrollmentNumber,
		"year_of_call":      profile.YearOfCall,
		"law_school":        profile.LawSchool,
		"graduation_year":   profile.GraduationYear,
		"practice_areas":    profile.PracticeAreaIDs,
		"specializations":   profile.SpecializationIDs,
		"languages":         profile.LanguageIDs,
	}
}
