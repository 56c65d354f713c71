package httptransport

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 响应体沿用原有前端已经在解析的字段结构：
// 成功提交/删除返回 {"message": ...}，登录返回
// {"success": bool, ...}，错误返回 {"error": ...}。

// OK 成功响应，携带提示消息
func OK(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// OKData 成功响应，携带数据载荷
func OKData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// BadRequest 请求参数错误（400）
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// Unauthorized 未认证错误（401）
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// InternalError 服务器内部错误（500）
func InternalError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// LoginOK 登录成功响应，签发会话后调用
func LoginOK(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": MsgLoginVerified,
	})
}

// LoginFailed 登录失败响应（401），不透露失败细节
func LoginFailed(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   MsgLoginRejected,
	})
}

// LogoutOK 注销成功响应
func LogoutOK(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
