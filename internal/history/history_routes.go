package history

import (
	"go-taxcalc/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	calculations := r.Group("/calculations/history")
	calculations.Use(
		middleware.AuthMiddleware(),
		middleware.ExtractUserID(),
		middleware.ContextLogger(logger),
		middleware.RateLimitByUser(rate.Limit(5), 10),
	)
	{
		calculations.GET("", handler.List)
		if redisClient != nil {
			calculations.POST("", middleware.Idempotency(redisClient), handler.Save)
		} else {
			calculations.POST("", handler.Save)
		}
	}
}
