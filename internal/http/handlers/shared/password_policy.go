package shared

import (
	"errors"

	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/i18n"
	"github.com/autoluxe/internal/service"

	"github.com/gin-gonic/gin"
)

// RespondPasswordPolicyError 密码强度不足时返回本地化提示，返回是否已处理。
func RespondPasswordPolicyError(c *gin.Context, err error) bool {
	if err == nil || !errors.Is(err, service.ErrWeakPassword) {
		return false
	}
	var perr interface {
		Key() string
		Args() []interface{}
	}
	if errors.As(err, &perr) {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), perr.Key(), perr.Args()...)
		RespondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return true
	}
	RespondError(c, response.CodeBadRequest, "error.password_weak", nil)
	return true
}
