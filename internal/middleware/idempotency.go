package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-taxcalc/internal/shared/apperror"
	"go-taxcalc/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyLockTTL = 30 * time.Second

// Idempotency replays the cached response for a repeated Idempotency-Key and
// rejects a concurrent duplicate while the first request still holds the
// lock. The handler is responsible for caching its response under
// IdempotencyCacheKey and releasing IdempotencyLockKey.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		userID := c.GetString(ValidatedUserIDKey)
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached any
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				c.Header("Idempotent-Replayed", "true")
				response.Success(c, http.StatusOK, cached, nil)
				c.Abort()
				return
			}
		} else if err != redis.Nil {
			// fail open when redis is unavailable
			zap.L().Named("middleware.idempotency").Warn("idempotency cache lookup failed", zap.Error(err))
			c.Next()
			return
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			zap.L().Named("middleware.idempotency").Warn("idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			abortWith(c, apperror.ErrRequestInProgress)
			return
		}

		c.Set(IdempotencyCacheKey, cacheKey)
		c.Set(IdempotencyLockKey, lockKey)

		c.Next()
	}
}
