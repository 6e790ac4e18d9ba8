package profileRepo

import (
	"context"
	"errors"

	"lexmarket/models"
)

// ErrProfileNotFound is returned when the account has no lawyer profile.
var ErrProfileNotFound = errors.New("profile not found")

// ErrDuplicateEnrollment is returned when the enrollment number belongs to another profile.
var ErrDuplicateEnrollment = errors.New("enrollment number already registered")

// ProfileRepository defines methods for lawyer profile data access.
type ProfileRepository interface {
	// GetByAccountID retrieves the profile owned by an account.
	GetByAccountID(ctx context.Context, accountID string) (*models.Profile, error)
	// Create inserts a new profile record.
	Create(ctx context.Context, profile *models.Profile) error
	// Update replaces the stored profile with the given one.
	Update(ctx context.Context, profile *models.Profile) error
	// EnrollmentNumberTaken reports whether another account's profile holds the number.
	EnrollmentNumberTaken(ctx context.Context, number, exceptAccountID string) (bool, error)
	// UpdateStatusIf applies change only when the stored status is one of change.From.
	// It reports whether a profile was updated.
	UpdateStatusIf(ctx context.Context, accountID string, change models.StatusChange) (bool, error)
	// ListByStatus returns profiles in the given status, oldest submission first.
	ListByStatus(ctx context.Context, status models.ProfileStatus, limit int64) ([]models.Profile, error)
}
