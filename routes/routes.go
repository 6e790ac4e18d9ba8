package routes

import (
	"net/http"
	"time"

	"lexmarket/handlers"
	"lexmarket/middleware"
	"lexmarket/models"
	"lexmarket/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.AccountRepo, hb.AuthCache))
		protected.GET("/me", hb.Auth.MeHandler)
		protected.POST("/logout", hb.Auth.LogoutHandler)
		protected.PUT("/fcm-token", hb.Auth.UpdateFCMTokenHandler)
	}
}

// RegisterOnboardingRoutes registers the lawyer onboarding endpoints.
func RegisterOnboardingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/lawyer/onboarding")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AccountRepo, hb.AuthCache))
		api.Use(middleware.RequireRole(models.RoleLawyer))

		api.GET("/status", hb.Onboarding.GetStatusHandler)
		api.GET("/steps", hb.Onboarding.ListStepsHandler)
		api.GET("/steps/:step/metadata", hb.Onboarding.StepMetadataHandler)
		api.GET("/steps/:step/validation-rules", hb.Onboarding.ValidationRulesHandler)
		api.GET("/steps/:step/data", hb.Onboarding.StepDataHandler)
		api.POST("/steps/:step", hb.Onboarding.SaveStepHandler)
		api.POST("/steps/:step/skip", hb.Onboarding.SkipStepHandler)
		api.POST("/bulk", hb.Onboarding.BulkSaveHandler)
		api.POST("/submit", hb.Onboarding.SubmitHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for profile verification.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin/profiles")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(hb.AccountRepo, hb.AuthCache))
		adminGroup.Use(middleware.RequireRole(models.RoleAdmin))
		adminGroup.GET("/pending", hb.Admin.PendingProfilesHandler)
		adminGroup.POST("/:accountID/approve", hb.Admin.ApproveHandler)
		adminGroup.POST("/:accountID/reject", hb.Admin.RejectHandler)
		adminGroup.POST("/:accountID/suspend", hb.Admin.SuspendHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Hi, I'm lexmarket"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterOnboardingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
