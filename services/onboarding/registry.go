package onboarding

import (
	"fmt"
	"sort"
)

// StepDefinition is the static description of one onboarding step.
type StepDefinition struct {
	Name           string      `json:"name"`
	Order          int         `json:"order"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Icon           string      `json:"icon,omitempty"`
	Required       bool        `json:"required"`
	Skippable      bool        `json:"skippable"`
	RequiredFields []string    `json:"required_fields"`
	OptionalFields []string    `json:"optional_fields"`
	Handler        StepHandler `json:"-"`
}

// Registry is the immutable, ordered catalogue of onboarding steps.
type Registry struct {
	steps  []StepDefinition
	byName map[string]int
}

// NewRegistry validates defs and returns them sorted by Order. Field lists
// left empty are derived from the handler's rules.
func NewRegistry(defs ...StepDefinition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("registry needs at least one step")
	}
	r := &Registry{
		steps:  make([]StepDefinition, 0, len(defs)),
		byName: make(map[string]int, len(defs)),
	}
	orders := make(map[int]string, len(defs))
	names := make(map[string]bool, len(defs))
	for _, def := range defs {
		switch {
		case def.Name == "":
			return nil, fmt.Errorf("step with order %d has no name", def.Order)
		case names[def.Name]:
			return nil, fmt.Errorf("duplicate step name %q", def.Name)
		case orders[def.Order] != "":
			return nil, fmt.Errorf("steps %q and %q share order %d", orders[def.Order], def.Name, def.Order)
		case def.Required && def.Skippable:
			return nil, fmt.Errorf("required step %q cannot be skippable", def.Name)
		case def.Handler == nil:
			return nil, fmt.Errorf("step %q has no handler", def.Name)
		}
		names[def.Name] = true
		orders[def.Order] = def.Name

		if len(def.RequiredFields) == 0 && len(def.OptionalFields) == 0 {
			def.RequiredFields, def.OptionalFields = splitFields(def.Handler.Rules())
		}
		r.steps = append(r.steps, def)
	}
	sort.Slice(r.steps, func(i, j int) bool { return r.steps[i].Order < r.steps[j].Order })
	for i, def := range r.steps {
		r.byName[def.Name] = i
	}
	return r, nil
}

func splitFields(rules []FieldRule) (required, optional []string) {
	required, optional = []string{}, []string{}
	for _, rule := range rules {
		if rule.Required {
			required = append(required, rule.Field)
		} else {
			optional = append(optional, rule.Field)
		}
	}
	return required, optional
}

// DefaultRegistry returns the lawyer onboarding catalogue.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		StepDefinition{
			Name:        StepPersonalInfo,
			Order:       1,
			Title:       "Personal Information",
			Description: "Your contact details and office location",
			Icon:        "user",
			Required:    true,
			Handler:     PersonalInfoStep{},
		},
		StepDefinition{
			Name:        StepProfessionalInfo,
			Order:       2,
			Title:       "Professional Credentials",
			Description: "Your legal qualifications and areas of practice",
			Icon:        "briefcase",
			Required:    true,
			Handler:     ProfessionalInfoStep{},
		},
		StepDefinition{
			Name:        StepDocuments,
			Order:       3,
			Title:       "Document Upload",
			Description: "Upload your NBA certificate and CV",
			Icon:        "file",
			Required:    true,
			Handler:     DocumentsStep{},
		},
		StepDefinition{
			Name:        StepAvailability,
			Order:       4,
			Title:       "Availability & Fees",
			Description: "Set your consultation hours and pricing",
			Icon:        "calendar",
			Skippable:   true,
			Handler:     AvailabilityStep{},
		},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Steps returns the definitions in canonical order.
func (r *Registry) Steps() []StepDefinition {
	out := make([]StepDefinition, len(r.steps))
	copy(out, r.steps)
	return out
}

func (r *Registry) Len() int { return len(r.steps) }

func (r *Registry) Step(name string) (StepDefinition, error) {
	i, ok := r.byName[name]
	if !ok {
		return StepDefinition{}, &UnknownStepError{Step: name}
	}
	return r.steps[i], nil
}

func (r *Registry) Handler(name string) (StepHandler, error) {
	def, err := r.Step(name)
	if err != nil {
		return nil, err
	}
	return def.Handler, nil
}
