package onboarding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"regexp"
	"strings"
	"time"

	"lexmarket/models"
	"lexmarket/services/storage"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// UploadedFile is one file part of a step submission.
type UploadedFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// StepPayload is the raw submission for one step. Fields holds decoded JSON
// or form values; Files holds uploaded parts keyed by form field name.
// ReceivedAt anchors date rules such as "not later than this year"; the zero
// value means the wall clock.
type StepPayload struct {
	Fields     map[string]interface{}
	Files      map[string]*UploadedFile
	ReceivedAt time.Time
}

// FieldRule documents the validation contract of one payload field.
type FieldRule struct {
	Field    string   `json:"field"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Rules    []string `json:"rules"`
}

// ReferenceChecker resolves reference-data identifiers.
type ReferenceChecker interface {
	MissingIDs(ctx context.Context, kind models.TaxonomyKind, ids []string) ([]string, error)
}

// EnrollmentChecker looks up enrollment number ownership.
type EnrollmentChecker interface {
	EnrollmentNumberTaken(ctx context.Context, number, exceptAccountID string) (bool, error)
}

// StepEnv is handed to StepHandler.Persist. Handlers mutate Account and
// Profile in place; the caller writes them back inside the same transaction.
type StepEnv struct {
	Account        *models.Account
	Profile        *models.Profile
	ContactChanged bool

	References     ReferenceChecker
	Enrollments    EnrollmentChecker
	Documents      storage.DocumentStore
	DocumentFolder string

	// Stored lists the document references uploaded during this save.
	Stored []string
	// Replaced lists references this save superseded; they are removed after commit.
	Replaced []string
}

// StepHandler implements the behaviour of one onboarding step.
type StepHandler interface {
	// Rules returns the field-level validation contract.
	Rules() []FieldRule
	// Validate checks the payload shape without touching storage.
	Validate(payload StepPayload) error
	// IsComplete reports whether the persisted data satisfies the step.
	IsComplete(profile *models.Profile, account *models.Account) bool
	// CompletionPercentage is the share of the step's required fields that are filled.
	CompletionPercentage(profile *models.Profile, account *models.Account) int
	// Persist applies the payload to env and returns the snapshot kept on the step record.
	Persist(ctx context.Context, env *StepEnv, payload StepPayload) (map[string]interface{}, error)
	// Data returns the step's fields as currently stored on the profile and account.
	Data(profile *models.Profile, account *models.Account) map[string]interface{}
}

var (
	payloadValidate = newPayloadValidator()
	phonePattern    = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)

	errNotInteger = errors.New("must be an integer")
)

type receivedAtKey struct{}

func receivedAt(ctx context.Context) time.Time {
	if at, ok := ctx.Value(receivedAtKey{}).(time.Time); ok && !at.IsZero() {
		return at
	}
	return time.Now()
}

func newPayloadValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidationCtx("notfuture", func(ctx context.Context, fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(receivedAt(ctx).Year())
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	v.RegisterStructValidation(validateDayWindow, dayWindow{})
	return v
}

// integralNumbers refuses fractional floats bound for integer fields. JSON
// numbers arrive as float64 and would otherwise be truncated silently.
func integralNumbers(from, to reflect.Type, data interface{}) (interface{}, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	var f float64
	switch from.Kind() {
	case reflect.Float32, reflect.Float64:
		f = reflect.ValueOf(data).Float()
	default:
		return data, nil
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return nil, errNotInteger
	}
	return data, nil
}

// decodeFields decodes the payload fields into out and validates its tags.
func decodeFields(step string, payload StepPayload, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       integralNumbers,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to build %s decoder: %w", step, err)
	}
	fields := payload.Fields
	if fields == nil {
		fields = map[string]interface{}{}
	}
	if err := decoder.Decode(fields); err != nil {
		return decodeError(step, err)
	}
	ctx := context.WithValue(context.Background(), receivedAtKey{}, payload.ReceivedAt)
	if err := payloadValidate.StructCtx(ctx, out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fieldErrors(step, verrs)
		}
		return fmt.Errorf("failed to validate %s: %w", step, err)
	}
	return nil
}

func decodeError(step string, err error) *ValidationError {
	out := &ValidationError{Step: step, Fields: map[string]string{}}
	var merr *mapstructure.Error
	if !errors.As(err, &merr) {
		out.Fields["payload"] = err.Error()
		return out
	}
	for _, msg := range merr.Errors {
		field := "payload"
		if start := strings.Index(msg, "'"); start >= 0 {
			if end := strings.Index(msg[start+1:], "'"); end > 0 {
				field = msg[start+1 : start+1+end]
			}
		}
		if strings.HasSuffix(msg, errNotInteger.Error()) {
			out.Fields[field] = errNotInteger.Error()
			continue
		}
		out.Fields[field] = "has an invalid type"
	}
	return out
}

func fieldErrors(step string, verrs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{Step: step, Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		key := fe.Namespace()
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		out.Fields[key] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "max":
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		switch fe.Kind() {
		case reflect.Slice, reflect.Map:
			return fmt.Sprintf("must contain %s %s items", bound, fe.Param())
		case reflect.String:
			return fmt.Sprintf("must be %s %s characters", bound, fe.Param())
		default:
			return fmt.Sprintf("must be %s %s", bound, fe.Param())
		}
	case "notfuture":
		return "cannot be later than the current year"
	case "hhmm":
		return "must be a time in HH:MM format"
	case "after_start":
		return "must be after start"
	case "phone":
		return "must be a valid phone number"
	case "oneof":
		return "must be one of: " + fe.Param()
	}
	return "failed " + fe.Tag() + " rule"
}

// rulesFor derives the field contract from the mapstructure and validate tags of v.
func rulesFor(v interface{}) []FieldRule {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	rules := make([]FieldRule, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		tag := f.Tag.Get("validate")
		var parts []string
		if tag != "" {
			parts = strings.Split(tag, ",")
		}
		rule := FieldRule{Field: name, Type: kindName(f.Type), Rules: parts}
		for _, p := range parts {
			if p == "required" {
				rule.Required = true
			}
		}
		rules = append(rules, rule)
	}
	return rules
}

func kindName(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	}
	return t.Kind().String()
}

// copyFields returns a shallow copy of the submitted fields for the step snapshot.
func copyFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// checkReferences reports every identifier in ids that does not exist for kind.
func checkReferences(ctx context.Context, refs ReferenceChecker, verr *ValidationError, field string, kind models.TaxonomyKind, ids ...string) error {
	var lookup []string
	for _, id := range ids {
		if id != "" {
			lookup = append(lookup, id)
		}
	}
	if len(lookup) == 0 || refs == nil {
		return nil
	}
	missing, err := refs.MissingIDs(ctx, kind, lookup)
	if err != nil {
		return fmt.Errorf("failed to check %s references: %w", field, err)
	}
	if len(missing) > 0 {
		verr.Fields[field] = "contains unknown identifiers: " + strings.Join(missing, ", ")
	}
	return nil
}

// uniqueIDs removes duplicates while preserving submission order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func filledPercent(values ...bool) int {
	filled := 0
	for _, ok := range values {
		if ok {
			filled++
		}
	}
	return roundPercent(filled, len(values))
}
