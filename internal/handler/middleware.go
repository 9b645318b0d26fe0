package handler

import (
	"net/http"
	"strings"

	"github.com/atlas87/atlas-backend/internal/dto"
	"github.com/atlas87/atlas-backend/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware validates the session token and adds the user id to the
// context. Expired and tampered tokens both produce the same 401 body; the
// distinction only shows up in logs.
func AuthMiddleware(authService service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Message: "Invalid token",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Message: "Invalid token",
			})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			logger.Debug("session token rejected", zap.Error(err))
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Message: "Invalid token",
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("claims", claims)

		c.Next()
	}
}
