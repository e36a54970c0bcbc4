package admin

import "github.com/autoluxe/internal/provider"

// Handler 管理端处理器（商品维护、订单状态、留言与用户管理、角色策略）
// 路由需挂载登录与管理员中间件
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
