package admin

import (
	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/i18n"

	"github.com/gin-gonic/gin"
)

// ListContactMessages 留言列表
func (h *Handler) ListContactMessages(c *gin.Context) {
	messages, err := h.ContactService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, messages)
}

// GetContactMessage 留言详情
func (h *Handler) GetContactMessage(c *gin.Context) {
	msg, err := h.ContactService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, contactGetErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{
		"success": true,
		"data":    msg,
	})
}

// DeleteContactMessage 删除留言
func (h *Handler) DeleteContactMessage(c *gin.Context) {
	if err := h.ContactService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondWithMappedError(c, err, contactDeleteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Message(c, response.CodeOK, i18n.T(i18n.ResolveLocale(c), "contact.deleted"), nil)
}
