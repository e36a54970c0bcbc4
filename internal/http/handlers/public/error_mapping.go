package public

import (
	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/service"

	handlershared "github.com/autoluxe/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError = handlershared.ErrorRule

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	handlershared.RespondWithMappedError(c, err, rules, fallbackCode, fallbackKey)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	return handlershared.ConcatErrorRules(groups...)
}

var cartCommonErrorRules = []mappedHandlerError{
	{Target: service.ErrCartBusy, Code: response.CodeTooManyRequests, Key: "cart.busy"},
	{Target: service.ErrCartNotFound, Code: response.CodeNotFound, Key: "error.cart_not_found"},
}

var cartReplaceErrorRules = []mappedHandlerError{
	{Target: service.ErrCartItemsRequired, Code: response.CodeBadRequest, Key: "cart.items_required"},
	{Target: service.ErrCartLineInvalid, Code: response.CodeBadRequest, Key: "cart.line_invalid"},
}

var cartAddErrorRules = []mappedHandlerError{
	{Target: service.ErrCartLineInvalid, Code: response.CodeBadRequest, Key: "cart.add_invalid"},
	{Target: service.ErrOutOfStock, Code: response.CodeBadRequest, Key: "cart.out_of_stock"},
	{Target: service.ErrCatalogItemNotFound, Code: response.CodeNotFound, Key: "catalog.not_found"},
}

var cartUpdateErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidQuantity, Code: response.CodeBadRequest, Key: "cart.quantity_required"},
	{Target: service.ErrCartItemNotFound, Code: response.CodeNotFound, Key: "cart.item_not_in_cart"},
	{Target: service.ErrCatalogItemNotFound, Code: response.CodeNotFound, Key: "cart.product_unavailable"},
}

var cartRemoveErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidID, Code: response.CodeBadRequest, Key: "catalog.invalid_id"},
}

var orderConfirmErrorRules = []mappedHandlerError{
	{Target: service.ErrShippingIncomplete, Code: response.CodeBadRequest, Key: "order.shipping_incomplete"},
	{Target: service.ErrCartEmpty, Code: response.CodeBadRequest, Key: "order.cart_empty"},
	{Target: service.ErrCatalogItemNotFound, Code: response.CodeNotFound, Key: "order.product_not_found"},
	{Target: service.ErrCartBusy, Code: response.CodeTooManyRequests, Key: "cart.busy"},
}

var orderQueryErrorRules = []mappedHandlerError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "order.not_found"},
	{Target: service.ErrOrderNotCancelable, Code: response.CodeBadRequest, Key: "order.not_cancelable"},
}

var reviewErrorRules = []mappedHandlerError{
	{Target: service.ErrReviewRatingInvalid, Code: response.CodeBadRequest, Key: "review.rating_invalid"},
	{Target: service.ErrReviewNotEligible, Code: response.CodeBadRequest, Key: "review.not_eligible"},
	{Target: service.ErrReviewNotFound, Code: response.CodeNotFound, Key: "review.not_found"},
	{Target: service.ErrForbidden, Code: response.CodeForbidden, Key: "error.forbidden"},
}

var contactSubmitErrorRules = []mappedHandlerError{
	{Target: service.ErrContactFieldsRequired, Code: response.CodeBadRequest, Key: "contact.fields_required"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "contact.email_invalid"},
}

var captchaErrorRules = []mappedHandlerError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "captcha.required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "captcha.invalid"},
}

var userAuthErrorRules = []mappedHandlerError{
	{Target: service.ErrUserNameRequired, Code: response.CodeBadRequest, Key: "user.name_required"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "user.email_invalid"},
	{Target: service.ErrEmailExists, Code: response.CodeBadRequest, Key: "user.email_exists"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "user.invalid_credentials"},
	{Target: service.ErrUserDisabled, Code: response.CodeUnauthorized, Key: "user.disabled"},
}

var userProfileErrorRules = []mappedHandlerError{
	{Target: service.ErrForbidden, Code: response.CodeForbidden, Key: "error.forbidden"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "user.not_found"},
	{Target: service.ErrProfileEmpty, Code: response.CodeBadRequest, Key: "user.nothing_to_update"},
}
