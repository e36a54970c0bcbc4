package public

import (
	"errors"

	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/i18n"
	"github.com/autoluxe/internal/service"

	"github.com/gin-gonic/gin"
)

// CartLineRequest 购物车行请求
type CartLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Category  string `json:"category"`
}

// ReplaceCartRequest 整体替换购物车请求
type ReplaceCartRequest struct {
	Items []CartLineRequest `json:"items"`
}

// UpdateCartItemRequest 修改购物车行数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart 获取购物车（附带商品首图）
func (h *Handler) GetCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.Fetch(c.Request.Context(), userID)
	if err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, cart)
}

// ReplaceCart 整体替换购物车
func (h *Handler) ReplaceCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req ReplaceCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "cart.items_required", nil)
		return
	}
	var lines []service.CartLineInput
	if req.Items != nil {
		lines = make([]service.CartLineInput, 0, len(req.Items))
		for _, item := range req.Items {
			lines = append(lines, service.CartLineInput{
				ItemID:   item.ProductID,
				Quantity: item.Quantity,
				Category: item.Category,
			})
		}
	}

	cart, err := h.CartService.Replace(c.Request.Context(), userID, lines)
	if err != nil {
		locale := i18n.ResolveLocale(c)
		var stockErr *service.StockError
		var categoryErr *service.CategoryError
		var missingErr *service.ItemNotFoundError
		switch {
		case errors.As(err, &stockErr):
			respondErrorWithDetails(c, response.CodeBadRequest, i18n.Sprintf(locale, "cart.insufficient_stock", stockErr.Name), gin.H{
				"item_id":         stockErr.ItemID,
				"available_stock": stockErr.Available,
			})
		case errors.As(err, &categoryErr):
			respondErrorWithMsg(c, response.CodeBadRequest, i18n.Sprintf(locale, "cart.invalid_category", categoryErr.Category), nil)
		case errors.As(err, &missingErr):
			respondErrorWithMsg(c, response.CodeNotFound, i18n.Sprintf(locale, "cart.product_not_found", missingErr.ItemID), nil)
		default:
			respondWithMappedError(c, err, concatMappedHandlerErrors(cartReplaceErrorRules, cartCommonErrorRules), response.CodeInternal, "error.internal")
		}
		return
	}
	respondCart(c, "cart.updated", cart)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "cart.add_invalid", nil)
		return
	}

	cart, err := h.CartService.AddItem(c.Request.Context(), service.AddCartItemInput{
		UserID:   userID,
		ItemID:   req.ProductID,
		Category: req.Category,
		Quantity: req.Quantity,
	})
	if err != nil {
		locale := i18n.ResolveLocale(c)
		var stockErr *service.StockError
		switch {
		case errors.As(err, &stockErr) && stockErr.MaxAvailable != nil:
			remaining := *stockErr.MaxAvailable
			msg := i18n.T(locale, "cart.add_no_more")
			if remaining > 0 {
				msg = i18n.Sprintf(locale, "cart.add_more_limit", remaining)
			}
			respondErrorWithDetails(c, response.CodeBadRequest, msg, gin.H{
				"item_id":       stockErr.ItemID,
				"max_available": remaining,
			})
		case errors.As(err, &stockErr):
			respondErrorWithDetails(c, response.CodeBadRequest, i18n.T(locale, "cart.add_out_of_stock"), gin.H{
				"item_id":         stockErr.ItemID,
				"available_stock": stockErr.Available,
			})
		case errors.Is(err, service.ErrInvalidCategory):
			respondError(c, response.CodeBadRequest, "catalog.invalid_category", nil)
		default:
			respondWithMappedError(c, err, concatMappedHandlerErrors(cartAddErrorRules, cartCommonErrorRules), response.CodeInternal, "error.internal")
		}
		return
	}
	respondCart(c, "cart.item_added", cart)
}

// UpdateCartItem 修改购物车行数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "cart.quantity_required", nil)
		return
	}

	cart, err := h.CartService.UpdateLine(c.Request.Context(), userID, c.Param("itemId"), req.Quantity)
	if err != nil {
		var stockErr *service.StockError
		if errors.As(err, &stockErr) {
			available := stockErr.Available
			if stockErr.MaxAvailable != nil {
				available = *stockErr.MaxAvailable
			}
			respondErrorWithDetails(c, response.CodeBadRequest, i18n.Sprintf(i18n.ResolveLocale(c), "cart.only_available", available), gin.H{
				"item_id":       stockErr.ItemID,
				"max_available": available,
			})
			return
		}
		respondWithMappedError(c, err, concatMappedHandlerErrors(cartUpdateErrorRules, cartCommonErrorRules), response.CodeInternal, "error.internal")
		return
	}
	respondCart(c, "cart.item_updated", cart)
}

// RemoveCartItem 移除购物车行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.RemoveLine(c.Request.Context(), userID, c.Param("itemId"))
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			locale := i18n.ResolveLocale(c)
			respondErrorWithDetails(c, response.CodeNotFound, i18n.T(locale, "cart.item_not_found"), gin.H{
				"suggestion": i18n.T(locale, "cart.item_not_found_suggestion"),
			})
			return
		}
		respondWithMappedError(c, err, concatMappedHandlerErrors(cartRemoveErrorRules, cartCommonErrorRules), response.CodeInternal, "error.internal")
		return
	}
	respondCart(c, "cart.item_removed", cart)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.Clear(c.Request.Context(), userID)
	if err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "error.internal")
		return
	}
	respondCart(c, "cart.cleared", cart)
}

func respondCart(c *gin.Context, key string, cart interface{}) {
	response.Message(c, response.CodeOK, i18n.T(i18n.ResolveLocale(c), key), gin.H{"cart": cart})
}
