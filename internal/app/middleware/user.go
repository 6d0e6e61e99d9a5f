package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/JoshCLWren/TrailGuard/internal/domain/services"
	"github.com/JoshCLWren/TrailGuard/internal/error/code"
	"github.com/JoshCLWren/TrailGuard/internal/error/response"
	"github.com/JoshCLWren/TrailGuard/pkg/logger"
)

// RequireUser answers 404 unless :user_id names an existing user.
func RequireUser(users services.InterfaceUserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		ok, err := users.Exists(c.Request.Context(), userID)
		if err != nil {
			logger.Error("look up user %s: %v", userID, err)
			response.Fail(c, code.ErrDatabase)
			return
		}
		if !ok {
			response.Fail(c, code.ErrUserNotFound)
			return
		}
		c.Next()
	}
}
