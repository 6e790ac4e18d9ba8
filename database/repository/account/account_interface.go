package accountRepo

import (
	"context"
	"errors"
	"time"

	"lexmarket/models"
)

// ErrAccountNotFound is returned when no account matches the lookup.
var ErrAccountNotFound = errors.New("account not found")

// ErrEmailTaken is returned when an account with the same email exists.
var ErrEmailTaken = errors.New("email already registered")

// AccountRepository defines methods for account data access.
type AccountRepository interface {
	// GetByID retrieves an account by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Account, error)
	// GetByEmail retrieves an account by email; it returns nil, nil when none exists.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	// Create inserts a new account record.
	Create(ctx context.Context, account *models.Account) error
	// UpdateContact overwrites the contact fields owned by onboarding.
	UpdateContact(ctx context.Context, id string, contact models.ContactUpdate, at time.Time) error
	// UpdateFCMToken stores the device token used for push notifications.
	UpdateFCMToken(ctx context.Context, id, token string) error
	// UpdateTokenHash stores the hash of the current access token; an empty hash revokes it.
	UpdateTokenHash(ctx context.Context, id, hash string) error
}
