package account

import (
	"context"
	"fmt"
	"time"

	"lexmarket/database"
	accountRepo "lexmarket/database/repository/account"
	profileRepo "lexmarket/database/repository/profile"
	"lexmarket/models"

	"github.com/go-redis/redis/v8"
)

// AccountService registers and authenticates platform accounts.
type AccountService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Logout(ctx context.Context, accountID string) error
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
	UpdateFCMToken(ctx context.Context, accountID, token string) error
}

// TokenCache is the slice of the redis client used to cache token hashes.
// *redis.Client satisfies it.
type TokenCache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RegisterRequest is the self-service sign up payload. Admin accounts cannot be
// created through it.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Role      string `json:"role" validate:"required,oneof=lawyer client"`
}

// AuthResponse contains the account's ID, token, and additional details.
type AuthResponse struct {
	ID        string      `json:"id"`
	Token     string      `json:"token"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName,omitempty"`
	Role      models.Role `json:"role"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// DefaultAccountService is the production implementation.
type DefaultAccountService struct {
	Accounts accountRepo.AccountRepository
	Profiles profileRepo.ProfileRepository
	Tx       database.Transactor
	// Cache is optional; without it the auth middleware falls back to the stored hash.
	Cache TokenCache
	Now   func() time.Time
}

func NewDefaultAccountService(
	accounts accountRepo.AccountRepository,
	profiles profileRepo.ProfileRepository,
	tx database.Transactor,
	cache TokenCache,
) (*DefaultAccountService, error) {
	if accounts == nil || profiles == nil || tx == nil {
		return nil, fmt.Errorf("account service initialization error: account repo, profile repo or transactor is nil")
	}
	return &DefaultAccountService{
		Accounts: accounts,
		Profiles: profiles,
		Tx:       tx,
		Cache:    cache,
		Now:      time.Now,
	}, nil
}

func (s *DefaultAccountService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
