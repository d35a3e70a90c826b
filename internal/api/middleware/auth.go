package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/vibeshot/gallery-admin/internal/service"
	"github.com/vibeshot/gallery-admin/pkg/response"
)

// SessionCookie 管理员会话 cookie 名
const SessionCookie = "admin_session"

// AdminAuth 校验管理员会话 cookie
func AdminAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			response.Unauthorized(c, "未登录")
			c.Abort()
			return
		}
		if err := auth.Verify(token); err != nil {
			response.Unauthorized(c, "会话已失效，请重新登录")
			c.Abort()
			return
		}
		c.Next()
	}
}

// BotAuth 校验服务间调用的 x-api-key
func BotAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader("x-api-key")
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) != 1 {
			response.Unauthorized(c, "invalid api key")
			c.Abort()
			return
		}
		c.Next()
	}
}
