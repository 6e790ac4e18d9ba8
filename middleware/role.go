package middleware

import (
	"net/http"

	"lexmarket/models"
	"lexmarket/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole admits only authenticated accounts holding one of roles.
// It must run after JWTAuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.Role(c.GetString(ContextRole))
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{
			Message: "You do not have access to this resource",
			Code:    "forbidden",
		})
	}
}
