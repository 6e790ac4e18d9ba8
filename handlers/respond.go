package handlers

import (
	"errors"
	"net/http"

	accountRepo "lexmarket/database/repository/account"
	profileRepo "lexmarket/database/repository/profile"
	"lexmarket/middleware"
	"lexmarket/services/account"
	"lexmarket/services/onboarding"
	"lexmarket/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SuccessResponse is the envelope of every successful response.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, SuccessResponse{Success: true, Message: message, Data: data})
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid_request", "Invalid request: "+err.Error(), nil)
}

// respondError maps service errors onto HTTP statuses and error bodies.
func respondError(c *gin.Context, err error) {
	var coded onboarding.CodedError
	if errors.As(err, &coded) {
		utils.JSONError(c, codedStatus(coded), coded.Code(), coded.Error(), codedDetails(coded))
		return
	}

	var invalid account.InvalidRequestError
	switch {
	case errors.As(err, &invalid):
		utils.JSONError(c, http.StatusUnprocessableEntity, "validation_failed", "The given data was invalid.", gin.H{"fields": invalid.Fields})
	case errors.Is(err, account.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "invalid_credentials", err.Error(), nil)
	case errors.Is(err, account.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, "email_taken", err.Error(), nil)
	case errors.Is(err, profileRepo.ErrProfileNotFound):
		utils.JSONError(c, http.StatusNotFound, "profile_not_found", err.Error(), nil)
	case errors.Is(err, accountRepo.ErrAccountNotFound):
		utils.JSONError(c, http.StatusNotFound, "account_not_found", err.Error(), nil)
	default:
		getLogger(c).Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Internal Server Error", nil)
	}
}

func codedStatus(err onboarding.CodedError) int {
	switch err.(type) {
	case *onboarding.UnknownStepError:
		return http.StatusNotFound
	case *onboarding.NotLawyerError:
		return http.StatusForbidden
	case *onboarding.AlreadySubmittedError, *onboarding.ProfileLockedError, *onboarding.InvalidTransitionError:
		return http.StatusConflict
	}
	switch err.Category() {
	case onboarding.CategoryPrecondition:
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

func codedDetails(err onboarding.CodedError) interface{} {
	switch e := err.(type) {
	case *onboarding.ValidationError:
		return gin.H{"step": e.Step, "fields": e.Fields}
	case *onboarding.IncompleteProfileError:
		return gin.H{"missing_steps": e.MissingSteps}
	case *onboarding.DocumentUploadError:
		return gin.H{"field": e.Field}
	}
	return nil
}

// accountID returns the authenticated account, set by the auth middleware.
func accountID(c *gin.Context) string {
	return c.GetString(middleware.ContextAccountID)
}
