package models

import "time"

// ProfileStatus is the lifecycle state of a lawyer profile.
type ProfileStatus string

const (
	ProfileNotStarted    ProfileStatus = "not_started"
	ProfileInProgress    ProfileStatus = "in_progress"
	ProfilePendingReview ProfileStatus = "pending_review"
	ProfileVerified      ProfileStatus = "verified"
	ProfileRejected      ProfileStatus = "rejected"
	ProfileSuspended     ProfileStatus = "suspended"
)

// statusAliases maps legacy labels onto the canonical vocabulary.
var statusAliases = map[string]ProfileStatus{
	"pending_onboarding": ProfileNotStarted,
	"draft":              ProfileNotStarted,
	"under_review":       ProfilePendingReview,
	"approved":           ProfileVerified,
}

// ParseProfileStatus normalises a stored or submitted status label.
// Unknown labels are returned unchanged so that Valid can reject them.
func ParseProfileStatus(s string) ProfileStatus {
	if alias, ok := statusAliases[s]; ok {
		return alias
	}
	return ProfileStatus(s)
}

// Valid reports whether s belongs to the canonical vocabulary.
func (s ProfileStatus) Valid() bool {
	switch s {
	case ProfileNotStarted, ProfileInProgress, ProfilePendingReview,
		ProfileVerified, ProfileRejected, ProfileSuspended:
		return true
	}
	return false
}

// CanEdit reports whether onboarding steps may still be saved or skipped.
func (s ProfileStatus) CanEdit() bool {
	switch s {
	case ProfileNotStarted, ProfileInProgress, ProfileRejected:
		return true
	}
	return false
}

// IsSubmitted reports whether the profile has reached review or a later state.
func (s ProfileStatus) IsSubmitted() bool {
	switch s {
	case ProfilePendingReview, ProfileVerified, ProfileSuspended:
		return true
	}
	return false
}

var profileTransitions = map[ProfileStatus][]ProfileStatus{
	ProfileNotStarted:    {ProfileInProgress},
	ProfileInProgress:    {ProfileInProgress, ProfilePendingReview},
	ProfilePendingReview: {ProfileVerified, ProfileRejected},
	ProfileRejected:      {ProfileInProgress},
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Suspension is reachable from every state except itself.
func (s ProfileStatus) CanTransitionTo(next ProfileStatus) bool {
	if next == ProfileSuspended {
		return s != ProfileSuspended
	}
	for _, allowed := range profileTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TimeWindow is one day's consultation hours in 24h "HH:MM" notation.
type TimeWindow struct {
	Start string `bson:"start" json:"start" mapstructure:"start"`
	End   string `bson:"end" json:"end" mapstructure:"end"`
}

// Profile is the aggregate root for a lawyer's onboarding data.
type Profile struct {
	ID        string `bson:"id" json:"id"`
	AccountID string `bson:"accountId" json:"accountId"`

	// Professional credentials.
	EnrollmentNumber string `bson:"enrollmentNumber,omitempty" json:"enrollmentNumber,omitempty"`
	YearOfCall       int    `bson:"yearOfCall,omitempty" json:"yearOfCall,omitempty"`
	LawSchool        string `bson:"lawSchool,omitempty" json:"lawSchool,omitempty"`
	GraduationYear   int    `bson:"graduationYear,omitempty" json:"graduationYear,omitempty"`

	// Practice classification, replaced wholesale on every save.
	PracticeAreaIDs   []string `bson:"practiceAreaIds" json:"practiceAreaIds"`
	SpecializationIDs []string `bson:"specializationIds" json:"specializationIds"`
	LanguageIDs       []string `bson:"languageIds" json:"languageIds"`

	// Logistics.
	OfficeAddress   string                `bson:"officeAddress,omitempty" json:"officeAddress,omitempty"`
	Bio             string                `bson:"bio,omitempty" json:"bio,omitempty"`
	ConsultationFee *int64                `bson:"consultationFee,omitempty" json:"consultationFee,omitempty"`
	HourlyRate      *int64                `bson:"hourlyRate,omitempty" json:"hourlyRate,omitempty"`
	Availability    map[string]TimeWindow `bson:"availability,omitempty" json:"availability,omitempty"`

	// Document references returned by the storage service.
	BarCertificatePath string `bson:"barCertificatePath,omitempty" json:"barCertificatePath,omitempty"`
	CVPath             string `bson:"cvPath,omitempty" json:"cvPath,omitempty"`

	Status               ProfileStatus `bson:"status" json:"status"`
	SubmittedForReviewAt *time.Time    `bson:"submittedForReviewAt,omitempty" json:"submittedForReviewAt,omitempty"`
	VerifiedAt           *time.Time    `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	RejectionReason      string        `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewProfile returns an empty profile in the not_started state.
func NewProfile(id, accountID string, now time.Time) *Profile {
	return &Profile{
		ID:                id,
		AccountID:         accountID,
		PracticeAreaIDs:   []string{},
		SpecializationIDs: []string{},
		LanguageIDs:       []string{},
		Status:            ProfileNotStarted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// StatusChange describes a conditional status write.
type StatusChange struct {
	From            []ProfileStatus
	To              ProfileStatus
	At              time.Time
	SubmittedAt     *time.Time
	VerifiedAt      *time.Time
	RejectionReason *string
}
