package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	accountRepo "lexmarket/database/repository/account"
	"lexmarket/models"
	"lexmarket/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultAccountService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	acc, err := s.Accounts.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("Login: failed to fetch account", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if acc == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(ctx, acc)
}

// issueToken signs a fresh token and makes it the only valid one for the account.
func (s *DefaultAccountService) issueToken(ctx context.Context, acc *models.Account) (*AuthResponse, error) {
	token, err := utils.GenerateToken(acc.ID, acc.Email, string(acc.Role), utils.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	if err := s.Accounts.UpdateTokenHash(ctx, acc.ID, tokenHash); err != nil {
		utils.GetLogger().Error("issueToken: failed to store token hash", zap.String("accountID", acc.ID), zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if s.Cache != nil {
		cacheKey := utils.AuthCachePrefix + acc.ID
		if err := s.Cache.Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("issueToken: failed to cache token hash", zap.String("accountID", acc.ID), zap.Error(err))
		}
	}

	return &AuthResponse{
		ID:        acc.ID,
		Token:     token,
		Email:     acc.Email,
		FirstName: acc.FirstName,
		LastName:  acc.LastName,
		Role:      acc.Role,
		ExpiresAt: s.now().Add(utils.AccessTokenTTL),
	}, nil
}

// Logout revokes the account's current token.
func (s *DefaultAccountService) Logout(ctx context.Context, accountID string) error {
	if err := s.Accounts.UpdateTokenHash(ctx, accountID, ""); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	if s.Cache != nil {
		if err := s.Cache.Del(ctx, utils.AuthCachePrefix+accountID).Err(); err != nil {
			utils.GetLogger().Error("Logout: failed to clear token cache", zap.String("accountID", accountID), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultAccountService) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	acc, err := s.Accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, accountRepo.ErrAccountNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	return acc, nil
}

// UpdateFCMToken registers the device that receives onboarding notifications.
func (s *DefaultAccountService) UpdateFCMToken(ctx context.Context, accountID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return InvalidRequestError{Fields: map[string]string{"fcmToken": "is required"}}
	}
	return s.Accounts.UpdateFCMToken(ctx, accountID, token)
}
