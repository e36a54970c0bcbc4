package admin

import (
	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/i18n"

	"github.com/gin-gonic/gin"
)

// ListUsers 用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.UserService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, users)
}

// DeleteUser 删除用户（不可删除自己）
func (h *Handler) DeleteUser(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		return
	}
	if err := h.UserService.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Message(c, response.CodeOK, i18n.T(i18n.ResolveLocale(c), "user.deleted"), nil)
}
