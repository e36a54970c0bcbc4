package public

import (
	"errors"

	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/i18n"
	"github.com/autoluxe/internal/service"

	"github.com/gin-gonic/gin"
)

// ShippingInfoRequest 收货信息
type ShippingInfoRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// ConfirmOrderRequest 下单请求
type ConfirmOrderRequest struct {
	ShippingInfo *ShippingInfoRequest `json:"shippingInfo"`
}

// ConfirmOrder 购物车结算下单（货到付款）
func (h *Handler) ConfirmOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req ConfirmOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ShippingInfo == nil {
		respondError(c, response.CodeBadRequest, "order.shipping_incomplete", nil)
		return
	}
	info := req.ShippingInfo

	order, err := h.OrderService.Confirm(c.Request.Context(), userID, service.ShippingInput{
		FirstName:  info.FirstName,
		LastName:   info.LastName,
		Phone:      info.Phone,
		Address:    info.Address,
		City:       info.City,
		PostalCode: info.PostalCode,
		Country:    info.Country,
	})
	if err != nil {
		var stockErr *service.StockError
		if errors.As(err, &stockErr) {
			respondErrorWithDetails(c, response.CodeBadRequest, i18n.Sprintf(i18n.ResolveLocale(c), "order.insufficient_stock", stockErr.Name), gin.H{
				"item_id":         stockErr.ItemID,
				"available_stock": stockErr.Available,
			})
			return
		}
		respondWithMappedError(c, err, orderConfirmErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Message(c, response.CodeCreated, i18n.T(i18n.ResolveLocale(c), "order.placed"), gin.H{"order": order})
}

// ListOrders 当前用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orders, err := h.OrderService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, orders)
}

// GetOrder 订单详情（仅本人或管理员可见）
func (h *Handler) GetOrder(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		return
	}
	order, err := h.OrderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, orderQueryErrorRules, response.CodeInternal, "error.internal")
		return
	}
	if !caller.IsAdmin && order.UserID != caller.UserID {
		respondError(c, response.CodeNotFound, "order.not_found", nil)
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消待处理订单
func (h *Handler) CancelOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.OrderService.Cancel(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithMappedError(c, err, orderQueryErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Message(c, response.CodeOK, i18n.T(i18n.ResolveLocale(c), "order.canceled"), nil)
}
