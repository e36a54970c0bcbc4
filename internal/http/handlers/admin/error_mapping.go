package admin

import (
	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/service"
)

var orderAdminErrorRules = []mappedHandlerError{
	{Target: service.ErrOrderStatusInvalid, Code: response.CodeBadRequest, Key: "order.status_invalid"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "order.not_found"},
}

var contactGetErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidID, Code: response.CodeBadRequest, Key: "contact.invalid_id"},
	{Target: service.ErrContactNotFound, Code: response.CodeNotFound, Key: "contact.not_found"},
}

var contactDeleteErrorRules = []mappedHandlerError{
	{Target: service.ErrContactNotFound, Code: response.CodeNotFound, Key: "contact.delete_not_found"},
}

var userAdminErrorRules = []mappedHandlerError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "user.not_found"},
	{Target: service.ErrCannotDeleteSelf, Code: response.CodeBadRequest, Key: "user.cannot_delete_self"},
}
