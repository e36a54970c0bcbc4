package response

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var debugMode atomic.Bool

// SetDebug 调试模式下错误响应附带内部错误信息
func SetDebug(enabled bool) {
	debugMode.Store(enabled)
}

// IsDebug 是否调试模式
func IsDebug() bool {
	return debugMode.Load()
}

// Success 成功响应（200，数据直接作为响应体）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 创建成功响应（201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message 带提示消息的响应，extra 中的字段并入响应体
func Message(c *gin.Context, statusCode int, msg string, extra gin.H) {
	body := gin.H{"message": msg}
	for k, v := range extra {
		if k == "message" {
			continue
		}
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Page 分页列表响应，列表字段名由调用方决定
func Page(c *gin.Context, key string, items interface{}, page, pages int) {
	c.JSON(http.StatusOK, gin.H{
		key:     items,
		"page":  page,
		"pages": pages,
	})
}

// Error 错误响应
func Error(c *gin.Context, statusCode int, msg string) {
	Fail(c, WrapError(statusCode, msg, nil))
}

// Fail 输出 AppError，调试模式下附带 error 字段
func Fail(c *gin.Context, appErr *AppError) {
	if appErr == nil {
		appErr = WrapError(CodeInternal, http.StatusText(http.StatusInternalServerError), nil)
	}
	body := gin.H{}
	for k, v := range appErr.Details {
		body[k] = v
	}
	body["message"] = appErr.Message
	if requestID := requestIDFrom(c); requestID != "" {
		body["request_id"] = requestID
	}
	if appErr.Err != nil && IsDebug() {
		body["error"] = appErr.Err.Error()
	}
	c.JSON(normalizeStatus(appErr.Code), body)
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// Unauthorized 401响应
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// Forbidden 403响应
func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}

func normalizeStatus(code int) int {
	if code < http.StatusBadRequest || code > 599 {
		return http.StatusInternalServerError
	}
	return code
}

func requestIDFrom(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
