package public

import (
	"github.com/autoluxe/internal/constants"
	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/i18n"
	"github.com/autoluxe/internal/service"

	handlershared "github.com/autoluxe/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// ContactRequest 联系表单请求
type ContactRequest struct {
	Name    string                               `json:"name"`
	Email   string                               `json:"email"`
	Subject string                               `json:"subject"`
	Message string                               `json:"message"`
	Captcha *handlershared.CaptchaPayloadRequest `json:"captcha"`
}

// SubmitContact 提交联系表单
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "contact.fields_required", nil)
		return
	}
	if !h.verifyCaptcha(c, constants.CaptchaSceneContact, req.Captcha) {
		return
	}

	if _, err := h.ContactService.Submit(c.Request.Context(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}); err != nil {
		respondWithMappedError(c, err, contactSubmitErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Message(c, response.CodeCreated, i18n.T(i18n.ResolveLocale(c), "contact.sent"), nil)
}
