package handlers

import (
	"net/http"

	"lexmarket/services/account"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves registration, login and session endpoints.
type AuthHandler struct {
	Service account.AccountService
}

func NewAuthHandler(svc account.AccountService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// RegisterHandler handles account registration.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	var req account.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid registration request", zap.Error(err))
		badRequest(c, err)
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Account created", resp)
}

// LoginHandler exchanges email and password for an access token.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		getLogger(c).Warn("Invalid login request", zap.Error(err))
		badRequest(c, err)
		return
	}

	resp, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Login successful", resp)
}

func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if err := h.Service.Logout(c.Request.Context(), accountID(c)); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) MeHandler(c *gin.Context) {
	acc, err := h.Service.GetAccount(c.Request.Context(), accountID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", acc)
}

// UpdateFCMTokenHandler registers the device that receives onboarding pushes.
func (h *AuthHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var req struct {
		FCMToken string `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Service.UpdateFCMToken(c.Request.Context(), accountID(c), req.FCMToken); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Device token updated", nil)
}
