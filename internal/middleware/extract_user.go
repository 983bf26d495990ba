package middleware

import (
	"go-taxcalc/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

func ExtractUserID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, exists := ctx.Get(UserIDKey)
		if !exists {
			abortWith(ctx, apperror.ErrUnauthorized)
			return
		}

		userIDStr, ok := userID.(string)
		if !ok || userIDStr == "" {
			abortWith(ctx, apperror.ErrInvalidToken)
			return
		}

		ctx.Set(ValidatedUserIDKey, userIDStr)
		ctx.Next()
	}
}
