package admin

import (
	"strings"

	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/i18n"
	"github.com/autoluxe/internal/models"

	"github.com/gin-gonic/gin"
)

// AdminOrderView 管理端订单（附带下单用户信息）
type AdminOrderView struct {
	models.Order
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// ListAllOrders 全部订单（新订单在前）
func (h *Handler) ListAllOrders(c *gin.Context) {
	orders, err := h.OrderService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	views := make([]AdminOrderView, 0, len(orders))
	for _, order := range orders {
		view := AdminOrderView{Order: order}
		if order.User != nil {
			view.UserName = order.User.Name
			view.UserEmail = order.User.Email
		}
		views = append(views, view)
	}
	response.Success(c, views)
}

// UpdateOrderStatus 更新订单状态（四种状态间任意切换）
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "order.status_invalid", nil)
		return
	}
	status := strings.TrimSpace(req.Status)
	order, err := h.OrderService.SetStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	msg := i18n.Sprintf(i18n.ResolveLocale(c), "order.status_updated", status)
	response.Message(c, response.CodeOK, msg, gin.H{"order": order})
}
