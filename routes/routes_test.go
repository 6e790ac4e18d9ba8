package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	accountRepo "lexmarket/database/repository/account"
	"lexmarket/handlers"
	"lexmarket/models"
	"lexmarket/services/onboarding"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type noAccounts struct {
	accountRepo.AccountRepository
}

func (noAccounts) GetByID(context.Context, string) (*models.Account, error) {
	return nil, accountRepo.ErrAccountNotFound
}

type emptyOnboarding struct {
	onboarding.OnboardingService
}

func (emptyOnboarding) ListStepDefinitions() []onboarding.StepView { return nil }

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		AccountRepo:       noAccounts{},
		MaxRequestsPerMin: 1000,
		Auth:              handlers.NewAuthHandler(nil),
		Onboarding:        handlers.NewOnboardingHandler(emptyOnboarding{}),
		Admin:             handlers.NewAdminHandler(nil),
	})
	return r
}

func TestHealthRoute(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "lexmarket")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newEngine()
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/lawyer/onboarding/status"},
		{http.MethodGet, "/api/lawyer/onboarding/steps"},
		{http.MethodPost, "/api/lawyer/onboarding/submit"},
		{http.MethodPost, "/api/admin/profiles/lawyer-1/approve"},
		{http.MethodGet, "/api/auth/me"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/lawyer/onboarding/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
