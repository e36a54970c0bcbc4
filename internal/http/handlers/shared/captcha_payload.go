package shared

import (
	"strings"

	"github.com/autoluxe/internal/service"
)

// CaptchaPayloadRequest 请求体中的验证码答案 {"id": "...", "code": "..."}
type CaptchaPayloadRequest struct {
	ID   string `json:"id" form:"captcha_id"`
	Code string `json:"code" form:"captcha_code"`
}

// ToServicePayload 转换为 service 层验证码载荷
func (r *CaptchaPayloadRequest) ToServicePayload() service.CaptchaVerifyPayload {
	if r == nil {
		return service.CaptchaVerifyPayload{}
	}
	return service.CaptchaVerifyPayload{
		CaptchaID:   strings.TrimSpace(r.ID),
		CaptchaCode: strings.TrimSpace(r.Code),
	}
}
