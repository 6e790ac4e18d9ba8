package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorHandler turns a panic in a later handler into a 500 JSON response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("panic", rec),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Code:    "internal_error",
				})
			}
		}()
		c.Next()
	}
}

// JSONError logs and writes a structured error. Server errors log at Error
// level, client errors at Info.
func JSONError(c *gin.Context, status int, code, message string, details interface{}) {
	fields := []zap.Field{
		zap.String("code", code),
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
	}
	if status >= http.StatusInternalServerError {
		GetLogger().Error(message, fields...)
	} else {
		GetLogger().Info(message, append(fields, zap.Any("details", details))...)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Code: code, Details: details})
}
