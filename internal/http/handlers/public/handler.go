package public

import "github.com/autoluxe/internal/provider"

// Handler 商城前台处理器：商品浏览、购物车、下单、评价、留言与账号
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
