package public

import (
	"errors"

	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/service"

	handlershared "github.com/autoluxe/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// GetCaptchaSetting 验证码公开配置
func (h *Handler) GetCaptchaSetting(c *gin.Context) {
	if h.CaptchaService == nil {
		response.Success(c, service.CaptchaPublicSetting{})
		return
	}
	response.Success(c, h.CaptchaService.PublicSetting())
}

// GetImageCaptcha 获取图片验证码挑战
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil {
		respondError(c, response.CodeBadRequest, "captcha.disabled", nil)
		return
	}

	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaConfigInvalid):
			respondError(c, response.CodeBadRequest, "captcha.disabled", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, gin.H{
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}

// verifyCaptcha 校验场景验证码，失败时已写入响应
func (h *Handler) verifyCaptcha(c *gin.Context, scene string, payload *handlershared.CaptchaPayloadRequest) bool {
	if h.CaptchaService == nil {
		return true
	}
	if err := h.CaptchaService.Verify(scene, payload.ToServicePayload()); err != nil {
		respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "error.internal")
		return false
	}
	return true
}
