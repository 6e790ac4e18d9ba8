package handlers

import (
	"lexmarket/middleware"
	"lexmarket/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the request-scoped logger set by middleware.RequestLogger,
// tagged with the authenticated account when there is one.
func getLogger(c *gin.Context) *zap.Logger {
	logger := utils.GetLogger()
	if l, ok := c.Get("logger"); ok {
		if scoped, ok := l.(*zap.Logger); ok {
			logger = scoped
		}
	}
	if id := c.GetString(middleware.ContextAccountID); id != "" {
		logger = logger.With(zap.String("accountID", id))
	}
	return logger
}
