package handlers

import (
	accountRepo "lexmarket/database/repository/account"
	"lexmarket/middleware"
)

// HandlerBundle groups the endpoint handlers and what the route guards need.
type HandlerBundle struct {
	AccountRepo       accountRepo.AccountRepository
	AuthCache         middleware.AuthCache
	MaxRequestsPerMin int

	Auth       *AuthHandler
	Onboarding *OnboardingHandler
	Admin      *AdminHandler
}
