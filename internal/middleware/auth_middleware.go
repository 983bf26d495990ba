package middleware

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go-taxcalc/internal/shared/apperror"
	"go-taxcalc/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Abort(c, err.HTTPStatus, err.Code, err.Message)
}

// AuthMiddleware validates an HS256 bearer token (or the access_token cookie)
// signed with JWT_SECRET and stores its user_id claim, falling back to sub.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			zap.L().Named("middleware.auth").Error("JWT_SECRET is not configured")
			abortWith(c, apperror.ErrServiceUnavailable)
			return
		}

		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, apperror.ErrTokenExpired)
			} else {
				abortWith(c, apperror.ErrInvalidToken)
			}
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, apperror.ErrInvalidToken)
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			userID, _ = claims.GetSubject()
		}
		if userID == "" {
			abortWith(c, apperror.ErrInvalidToken)
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
