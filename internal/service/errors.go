package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidID    = errors.New("invalid id")
	ErrInvalidEmail = errors.New("invalid email")

	// 商品目录
	ErrCatalogItemNotFound = errors.New("catalog item not found")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrImageRequired       = errors.New("image is required")
	ErrNameTaken           = errors.New("name already taken")
	ErrPriceInvalid        = errors.New("price must not be negative")
	ErrStockInvalid        = errors.New("stock must not be negative")
	ErrNameRequired        = errors.New("name is required")
	ErrMediaNotConfigured  = errors.New("media host not configured")

	// 购物车
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartItemNotFound  = errors.New("item not in cart")
	ErrCartItemsRequired = errors.New("items array is required")
	ErrCartLineInvalid   = errors.New("cart line requires id, positive quantity and category")
	ErrInvalidQuantity   = errors.New("positive quantity is required")
	ErrOutOfStock        = errors.New("out of stock")
	ErrStockInsufficient = errors.New("insufficient stock")
	ErrCartBusy          = errors.New("cart is busy")

	// 订单
	ErrShippingIncomplete  = errors.New("incomplete shipping information")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotCancelable  = errors.New("only pending orders can be canceled")
	ErrOrderStatusInvalid  = errors.New("invalid status value")
	ErrOrderItemUnresolved = errors.New("order item unresolved")

	// 评价
	ErrReviewRatingInvalid = errors.New("rating must be between 1 and 5")
	ErrReviewNotEligible   = errors.New("review requires a qualifying order")
	ErrReviewNotFound      = errors.New("review not found")

	// 留言
	ErrContactFieldsRequired = errors.New("all fields are required")
	ErrContactNotFound       = errors.New("contact message not found")

	// 用户
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrWeakPassword       = errors.New("password too weak")
	ErrUserNameRequired   = errors.New("name is required")
	ErrProfileEmpty       = errors.New("nothing to update")
	ErrCannotDeleteSelf   = errors.New("cannot delete yourself")

	// 邮件 / 验证码
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
	ErrCaptchaRequired           = errors.New("captcha required")
	ErrCaptchaInvalid            = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid      = errors.New("captcha config invalid")
)

// StockError 库存不足详情
type StockError struct {
	ItemID       string
	Name         string
	Available    int
	MaxAvailable *int
}

func (e *StockError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("insufficient stock for %s (available %d)", e.Name, e.Available)
	}
	return fmt.Sprintf("insufficient stock (available %d)", e.Available)
}

// Is 匹配 ErrStockInsufficient
func (e *StockError) Is(target error) bool {
	return target == ErrStockInsufficient
}

func newStockError(itemID, name string, available int) *StockError {
	return &StockError{ItemID: itemID, Name: name, Available: available}
}

// withMaxAvailable 附带还可加入的数量
func (e *StockError) withMaxAvailable(n int) *StockError {
	if n < 0 {
		n = 0
	}
	e.MaxAvailable = &n
	return e
}

// CategoryError 无法识别的类目
type CategoryError struct {
	Category string
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("invalid category: %s", e.Category)
}

// Is 匹配 ErrInvalidCategory
func (e *CategoryError) Is(target error) bool {
	return target == ErrInvalidCategory
}

// ItemNotFoundError 指定商品不存在
type ItemNotFoundError struct {
	ItemID string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("catalog item not found: %s", e.ItemID)
}

// Is 匹配 ErrCatalogItemNotFound
func (e *ItemNotFoundError) Is(target error) bool {
	return target == ErrCatalogItemNotFound
}
