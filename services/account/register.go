package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lexmarket/models"
	"lexmarket/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var requestValidate = validator.New()

func validateRegister(req RegisterRequest) error {
	err := requestValidate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			fields[name] = "is required"
		case "email":
			fields[name] = "must be a valid email address"
		case "min":
			fields[name] = fmt.Sprintf("must be at least %s characters", fe.Param())
		case "max":
			fields[name] = fmt.Sprintf("must be at most %s characters", fe.Param())
		case "oneof":
			fields[name] = "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
		default:
			fields[name] = "is invalid"
		}
	}
	return InvalidRequestError{Fields: fields}
}

// Register creates the account and, for lawyers, the empty profile that
// onboarding fills in. Both writes share one transaction.
func (s *DefaultAccountService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := validateRegister(req); err != nil {
		return nil, err
	}

	existing, err := s.Accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing account", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	acc := &models.Account{
		ID:           uuid.New().String(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hashed),
		Role:         models.Role(req.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.Accounts.Create(ctx, acc); err != nil {
			return err
		}
		if acc.IsLawyer() {
			return s.Profiles.Create(ctx, models.NewProfile(uuid.New().String(), acc.ID, now))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		utils.GetLogger().Error("Register: failed to create account", zap.String("email", acc.Email), zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	utils.GetLogger().Info("Account registered", zap.String("accountID", acc.ID), zap.String("role", string(acc.Role)))
	return s.issueToken(ctx, acc)
}
