package public

import (
	"time"

	"github.com/autoluxe/internal/constants"
	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/models"

	handlershared "github.com/autoluxe/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 用户注册请求
type UserRegisterRequest struct {
	Name     string                               `json:"name"`
	Email    string                               `json:"email"`
	Password string                               `json:"password" binding:"required"`
	Captcha  *handlershared.CaptchaPayloadRequest `json:"captcha"`
}

// UserLoginRequest 用户登录请求
type UserLoginRequest struct {
	Email    string                               `json:"email" binding:"required"`
	Password string                               `json:"password" binding:"required"`
	Captcha  *handlershared.CaptchaPayloadRequest `json:"captcha"`
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if !h.verifyCaptcha(c, constants.CaptchaSceneRegister, req.Captcha) {
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if handlershared.RespondPasswordPolicyError(c, err) {
			return
		}
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Created(c, authPayload(user, token, expiresAt))
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "user.invalid_credentials", nil)
		return
	}
	if !h.verifyCaptcha(c, constants.CaptchaSceneLogin, req.Captcha) {
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, authPayload(user, token, expiresAt))
}

func authPayload(user *models.User, token string, expiresAt time.Time) gin.H {
	return gin.H{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt,
	}
}
