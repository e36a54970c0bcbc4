package admin

import (
	"errors"
	"net/url"
	"strings"

	"github.com/autoluxe/internal/authz"
	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/i18n"
	"github.com/autoluxe/internal/models"

	handlershared "github.com/autoluxe/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type authzUserRolesPayload struct {
	Roles []string `json:"roles"`
}

// GetAuthzMe 当前管理员的角色快照
func (h *Handler) GetAuthzMe(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetUserRoles(caller.UserID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"user_id": caller.UserID,
		"roles":   roles,
	})
}

// ListAuthzRoles 角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	items := make([]gin.H, 0, len(roles))
	for _, role := range roles {
		items = append(items, gin.H{
			"role":    role,
			"builtin": authz.IsBuiltinRole(role),
		})
	}
	response.Success(c, items)
}

// CreateAuthzRole 创建角色
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	h.logAuthzChange(c, "role_create", "role", role)
	response.Created(c, gin.H{"role": role})
}

// DeleteAuthzRole 删除角色
func (h *Handler) DeleteAuthzRole(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if err := h.AuthzService.DeleteRole(role); err != nil {
		h.respondAuthzError(c, err)
		return
	}
	h.logAuthzChange(c, "role_delete", "role", role)
	response.Message(c, response.CodeOK, i18n.T(i18n.ResolveLocale(c), "authz.role_deleted"), nil)
}

// GetAuthzRolePolicies 角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	policies, err := h.AuthzService.GetRolePolicies(decodeRoleParam(c.Param("role")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy 授予角色策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	h.logAuthzChange(c, "policy_grant", "role", req.Role, "object", req.Object, "action", req.Action)
	response.Message(c, response.CodeOK, i18n.T(i18n.ResolveLocale(c), "authz.policy_granted"), nil)
}

// RevokeAuthzPolicy 撤销角色策略
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		h.respondAuthzError(c, err)
		return
	}
	h.logAuthzChange(c, "policy_revoke", "role", req.Role, "object", req.Object, "action", req.Action)
	response.Message(c, response.CodeOK, i18n.T(i18n.ResolveLocale(c), "authz.policy_revoked"), nil)
}

// GetAuthzUserRoles 管理员的直接角色
func (h *Handler) GetAuthzUserRoles(c *gin.Context) {
	user, ok := h.loadAdminUser(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetUserRoles(user.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"user_id": user.ID, "roles": roles})
}

// SetAuthzUserRoles 覆盖管理员角色（仅限管理员账号）
func (h *Handler) SetAuthzUserRoles(c *gin.Context) {
	user, ok := h.loadAdminUser(c)
	if !ok {
		return
	}
	var req authzUserRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.SetUserRoles(user.ID, req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	roles, err := h.AuthzService.GetUserRoles(user.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	h.logAuthzChange(c, "user_roles_set", "target_user_id", user.ID, "roles", roles)
	response.Success(c, gin.H{"user_id": user.ID, "roles": roles})
}

func (h *Handler) loadAdminUser(c *gin.Context) (*models.User, bool) {
	id := models.NormalizeObjectID(c.Param("id"))
	if !models.IsObjectID(id) {
		respondError(c, response.CodeNotFound, "user.not_found", nil)
		return nil, false
	}
	user, err := h.UserRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return nil, false
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "user.not_found", nil)
		return nil, false
	}
	if !user.IsAdmin {
		respondError(c, response.CodeBadRequest, "authz.user_not_admin", nil)
		return nil, false
	}
	return user, true
}

func (h *Handler) respondAuthzError(c *gin.Context, err error) {
	if errors.Is(err, authz.ErrBuiltinRole) {
		respondError(c, response.CodeBadRequest, "authz.builtin_role", nil)
		return
	}
	respondError(c, response.CodeBadRequest, "error.bad_request", err)
}

func (h *Handler) logAuthzChange(c *gin.Context, action string, keysAndValues ...interface{}) {
	operatorID := c.GetString(handlershared.ContextUserID)
	fields := append([]interface{}{"action", action, "operator_id", operatorID}, keysAndValues...)
	requestLog(c).Infow("admin_authz_change", fields...)
}

func decodeRoleParam(value string) string {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(decoded)
}
