package shared

import (
	"errors"

	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/i18n"
	"github.com/autoluxe/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	respond(c, response.WrapError(code, msg, err))
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	respond(c, response.WrapError(code, msg, err))
}

// RespondErrorWithDetails 返回附带详情字段的错误响应。
func RespondErrorWithDetails(c *gin.Context, code int, msg string, details map[string]interface{}, err error) {
	respond(c, response.WrapError(code, msg, err).WithDetails(details))
}

func respond(c *gin.Context, appErr *response.AppError) {
	if appErr.Err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", appErr.Err,
		)
	}
	response.Fail(c, appErr)
}

// ErrorRule 业务错误到接口错误响应的映射关系。
type ErrorRule struct {
	Target error
	Code   int
	Key    string
}

// RespondWithMappedError 按规则顺序匹配错误，未命中时使用兜底响应并记录原始错误。
func RespondWithMappedError(c *gin.Context, err error, rules []ErrorRule, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatErrorRules 合并多组映射规则。
func ConcatErrorRules(groups ...[]ErrorRule) []ErrorRule {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]ErrorRule, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}
