package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	accountRepo "lexmarket/database/repository/account"
	"lexmarket/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthMiddleware.
const (
	ContextAccountID = "accountID"
	ContextRole      = "role"
)

// AuthCache is the slice of the redis client holding token hashes.
type AuthCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: message, Code: "unauthorized"})
}

// JWTAuthMiddleware accepts a bearer token only while it is the account's current
// token. The hash is read from cache first and from the account record on a miss.
// cache may be nil.
func JWTAuthMiddleware(accounts accountRepo.AccountRepository, cache AuthCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c, "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			unauthorized(c, "Missing or invalid Authorization header")
			return
		}

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil {
			unauthorized(c, "Invalid token")
			return
		}
		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + claims.Subject

		if cache != nil {
			cachedHash, err := cache.Get(ctx, cacheKey).Result()
			switch {
			case err == nil && cachedHash == computedHash:
				_ = cache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				authorize(c, claims.Subject, claims.Role)
				return
			case err == nil:
				unauthorized(c, "Token mismatch")
				return
			case err != redis.Nil:
				zap.L().Warn("Auth cache lookup failed, falling back to DB", zap.Error(err))
			}
		}

		acc, err := accounts.GetByID(ctx, claims.Subject)
		if err != nil || acc == nil {
			unauthorized(c, "Authentication error")
			return
		}
		if acc.TokenHash == "" || acc.TokenHash != computedHash {
			unauthorized(c, "Token mismatch")
			return
		}

		if cache != nil {
			_ = cache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err()
		}
		authorize(c, acc.ID, string(acc.Role))
	}
}

func authorize(c *gin.Context, accountID, role string) {
	c.Set(ContextAccountID, accountID)
	c.Set(ContextRole, role)
	c.Next()
}
