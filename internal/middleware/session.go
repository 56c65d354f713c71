package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"promarch/backend/internal/auth"
)

// SessionIDKey 会话 ID 在 gin 上下文中的键名
const SessionIDKey = "sessionID"

// SessionAuth 管理会话门禁中间件
type SessionAuth struct {
	authService *auth.Service
	cookieName  string
}

// NewSessionAuth 创建会话门禁中间件
func NewSessionAuth(authService *auth.Service, cookieName string) *SessionAuth {
	return &SessionAuth{
		authService: authService,
		cookieName:  cookieName,
	}
}

// RequireAdmin 要求已认证的管理会话。
//
// 未认证一律返回 401 且不做任何后续处理；
// 响应体沿用前端已经在解析的 {"error":"Unauthorized"}。
func (a *SessionAuth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(a.cookieName)
		if err != nil || !a.authService.IsAuthenticated(sessionID) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// SessionID 从上下文取出已验证的会话 ID
func SessionID(c *gin.Context) string {
	value, exists := c.Get(SessionIDKey)
	if !exists {
		return ""
	}
	id, _ := value.(string)
	return id
}
