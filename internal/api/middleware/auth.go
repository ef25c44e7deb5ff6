package middleware

import (
	"strings"

	"vidtube/internal/api/response"
	"vidtube/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ContextKeyUserID = "currentUserID"

// AuthRequired JWT 认证中间件，要求请求必须携带有效 Token
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "Missing authentication token")
			c.Abort()
			return
		}

		userID, err := utils.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired authentication token")
			c.Abort()
			return
		}

		// 将用户 ID 存入上下文，后续 Handler 通过 GetCurrentUserID 获取
		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// GetCurrentUserID 从 Gin Context 中获取当前登录用户 ID
func GetCurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := val.(uuid.UUID)
	return userID, ok
}

// extractToken 从 Authorization 头中提取 Bearer Token
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
