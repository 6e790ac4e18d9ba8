package onboarding

import (
	"fmt"
	"sort"
	"strings"

	"lexmarket/models"
)

// ErrorCategory groups onboarding errors by how a client should render them.
type ErrorCategory string

const (
	CategoryPrecondition ErrorCategory = "precondition"
	CategoryBusinessRule ErrorCategory = "business_rule"
	CategoryValidation   ErrorCategory = "validation"
	CategoryUpload       ErrorCategory = "upload"
)

// CodedError is implemented by every error the onboarding service reports to callers.
type CodedError interface {
	error
	Code() string
	Category() ErrorCategory
}

type UnknownStepError struct {
	Step string
}

func (e *UnknownStepError) Error() string           { return fmt.Sprintf("unknown onboarding step %q", e.Step) }
func (e *UnknownStepError) Code() string            { return "unknown_step" }
func (e *UnknownStepError) Category() ErrorCategory { return CategoryPrecondition }

type NotLawyerError struct {
	AccountID string
}

func (e *NotLawyerError) Error() string           { return "onboarding is only available for lawyers" }
func (e *NotLawyerError) Code() string            { return "not_lawyer" }
func (e *NotLawyerError) Category() ErrorCategory { return CategoryPrecondition }

type NonSkippableStepError struct {
	Step string
}

func (e *NonSkippableStepError) Error() string {
	return fmt.Sprintf("step %q cannot be skipped as it is required", e.Step)
}
func (e *NonSkippableStepError) Code() string            { return "step_not_skippable" }
func (e *NonSkippableStepError) Category() ErrorCategory { return CategoryBusinessRule }

// IncompleteProfileError lists the titles of required steps that are not completed yet.
type IncompleteProfileError struct {
	MissingSteps []string
}

func (e *IncompleteProfileError) Error() string {
	return "please complete all required steps before submitting. Missing steps: " + strings.Join(e.MissingSteps, ", ")
}
func (e *IncompleteProfileError) Code() string            { return "profile_incomplete" }
func (e *IncompleteProfileError) Category() ErrorCategory { return CategoryBusinessRule }

type AlreadySubmittedError struct {
	Status models.ProfileStatus
}

func (e *AlreadySubmittedError) Error() string {
	return fmt.Sprintf("profile already submitted (status %s)", e.Status)
}
func (e *AlreadySubmittedError) Code() string            { return "already_submitted" }
func (e *AlreadySubmittedError) Category() ErrorCategory { return CategoryBusinessRule }

// ProfileLockedError is returned when a step is edited while the profile status forbids edits.
type ProfileLockedError struct {
	Status models.ProfileStatus
}

func (e *ProfileLockedError) Error() string {
	return fmt.Sprintf("profile cannot be edited while %s", e.Status)
}
func (e *ProfileLockedError) Code() string            { return "profile_locked" }
func (e *ProfileLockedError) Category() ErrorCategory { return CategoryBusinessRule }

type InvalidTransitionError struct {
	From models.ProfileStatus
	To   models.ProfileStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("profile cannot move from %s to %s", e.From, e.To)
}
func (e *InvalidTransitionError) Code() string            { return "invalid_status_transition" }
func (e *InvalidTransitionError) Category() ErrorCategory { return CategoryBusinessRule }

// DocumentUploadError wraps a storage failure for one uploaded field.
type DocumentUploadError struct {
	Field string
	Err   error
}

func (e *DocumentUploadError) Error() string {
	return fmt.Sprintf("failed to upload %s: %v", e.Field, e.Err)
}
func (e *DocumentUploadError) Unwrap() error           { return e.Err }
func (e *DocumentUploadError) Code() string            { return "document_upload_failed" }
func (e *DocumentUploadError) Category() ErrorCategory { return CategoryUpload }

// ValidationError carries per-field messages keyed by payload field name.
type ValidationError struct {
	Step   string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("invalid %s data: %s", e.Step, strings.Join(parts, "; "))
}
func (e *ValidationError) Code() string            { return "validation_failed" }
func (e *ValidationError) Category() ErrorCategory { return CategoryValidation }

func newFieldError(step, field, msg string) *ValidationError {
	return &ValidationError{Step: step, Fields: map[string]string{field: msg}}
}
