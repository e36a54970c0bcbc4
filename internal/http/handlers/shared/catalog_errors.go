package shared

import (
	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/service"
	"github.com/autoluxe/internal/storage"
)

// CatalogErrorRules 商品目录读写共用的错误映射
var CatalogErrorRules = []ErrorRule{
	{Target: service.ErrInvalidID, Code: response.CodeBadRequest, Key: "catalog.invalid_id"},
	{Target: service.ErrCatalogItemNotFound, Code: response.CodeNotFound, Key: "catalog.not_found"},
	{Target: service.ErrInvalidCategory, Code: response.CodeBadRequest, Key: "catalog.invalid_category"},
	{Target: service.ErrImageRequired, Code: response.CodeBadRequest, Key: "catalog.image_required"},
	{Target: service.ErrNameRequired, Code: response.CodeBadRequest, Key: "catalog.name_required"},
	{Target: service.ErrNameTaken, Code: response.CodeBadRequest, Key: "catalog.name_taken"},
	{Target: service.ErrPriceInvalid, Code: response.CodeBadRequest, Key: "catalog.price_invalid"},
	{Target: service.ErrStockInvalid, Code: response.CodeBadRequest, Key: "catalog.stock_invalid"},
	{Target: service.ErrMediaNotConfigured, Code: response.CodeInternal, Key: "catalog.media_unavailable"},
}

// UploadErrorRules 上传图片校验错误映射
var UploadErrorRules = []ErrorRule{
	{Target: storage.ErrFileTooLarge, Code: response.CodeBadRequest, Key: "error.upload_too_large"},
	{Target: storage.ErrExtensionNotAllowed, Code: response.CodeBadRequest, Key: "error.upload_type"},
	{Target: storage.ErrTypeNotAllowed, Code: response.CodeBadRequest, Key: "error.upload_type"},
	{Target: storage.ErrImageUnreadable, Code: response.CodeBadRequest, Key: "error.upload_type"},
}
