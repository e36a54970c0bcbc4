package shared

import (
	"strings"

	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/service"

	"github.com/gin-gonic/gin"
)

// 鉴权中间件写入上下文的键
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextIsAdmin   = "is_admin"
)

// GetContextString 从上下文读取字符串值，缺失时返回 401。
func GetContextString(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return "", false
	}
	str, ok := value.(string)
	if !ok || strings.TrimSpace(str) == "" {
		RespondError(c, response.CodeUnauthorized, "error.token_invalid", nil)
		return "", false
	}
	return str, true
}

// GetCaller 读取当前请求的用户身份。
func GetCaller(c *gin.Context) (service.Caller, bool) {
	userID, ok := GetContextString(c, ContextUserID)
	if !ok {
		return service.Caller{}, false
	}
	return service.Caller{UserID: userID, IsAdmin: c.GetBool(ContextIsAdmin)}, true
}
