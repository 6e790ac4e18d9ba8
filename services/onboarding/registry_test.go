package onboarding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryOrder(t *testing.T) {
	r := DefaultRegistry()

	steps := r.Steps()
	require.Len(t, steps, 4)
	for i, def := range steps {
		assert.Equal(t, i+1, def.Order)
		if def.Required {
			assert.False(t, def.Skippable, def.Name)
		}
	}
	assert.Equal(t, StepAvailability, steps[3].Name)
	assert.True(t, steps[3].Skippable)

	steps[0].Title = "mutated"
	again, err := r.Step(StepPersonalInfo)
	require.NoError(t, err)
	assert.Equal(t, "Personal Information", again.Title, "Steps must return a copy")
}

func TestRegistryLookup(t *testing.T) {
	r := DefaultRegistry()

	h, err := r.Handler(StepDocuments)
	require.NoError(t, err)
	assert.IsType(t, DocumentsStep{}, h)

	_, err = r.Step("practice_areas")
	var unknown *UnknownStepError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "unknown_step", unknown.Code())
	assert.Equal(t, CategoryPrecondition, unknown.Category())
}

func TestNewRegistryRejectsInvalidDefinitions(t *testing.T) {
	cases := map[string][]StepDefinition{
		"empty": nil,
		"duplicate order": {
			{Name: "a", Order: 1, Handler: PersonalInfoStep{}},
			{Name: "b", Order: 1, Handler: AvailabilityStep{}},
		},
		"duplicate name": {
			{Name: "a", Order: 1, Handler: PersonalInfoStep{}},
			{Name: "a", Order: 2, Handler: AvailabilityStep{}},
		},
		"required and skippable": {
			{Name: "a", Order: 1, Required: true, Skippable: true, Handler: PersonalInfoStep{}},
		},
		"missing handler": {
			{Name: "a", Order: 1},
		},
		"missing name": {
			{Order: 1, Handler: PersonalInfoStep{}},
		},
	}
	for name, defs := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewRegistry(defs...)
			assert.Error(t, err)
		})
	}
}

func TestNewRegistrySortsByOrder(t *testing.T) {
	r, err := NewRegistry(
		StepDefinition{Name: "late", Order: 9, Handler: AvailabilityStep{}},
		StepDefinition{Name: "early", Order: 2, Required: true, Handler: PersonalInfoStep{}},
	)
	require.NoError(t, err)

	steps := r.Steps()
	assert.Equal(t, "early", steps[0].Name)
	assert.Equal(t, "late", steps[1].Name)
	assert.Equal(t, []string{"phone_number", "country_id", "state_id", "city_id", "office_address"}, steps[0].RequiredFields)
	assert.Equal(t, []string{"bio"}, steps[0].OptionalFields)
}
