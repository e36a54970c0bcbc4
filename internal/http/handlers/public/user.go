package public

import (
	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/service"

	handlershared "github.com/autoluxe/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// UpdateUserRequest 更新用户请求（字段缺省表示不修改）
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"isAdmin"`
}

// GetUser 用户详情（本人或管理员）
func (h *Handler) GetUser(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		return
	}
	user, err := h.UserService.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, userProfileErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, user)
}

// UpdateUser 更新用户（本人或管理员，仅管理员可修改管理员标记）
func (h *Handler) UpdateUser(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	user, err := h.UserService.Update(c.Request.Context(), caller, c.Param("id"), service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		if handlershared.RespondPasswordPolicyError(c, err) {
			return
		}
		respondWithMappedError(c, err, concatMappedHandlerErrors(userProfileErrorRules, userAuthErrorRules), response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, user)
}
