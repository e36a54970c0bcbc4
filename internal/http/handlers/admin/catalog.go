package admin

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/i18n"
	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/service"
	"github.com/autoluxe/internal/storage"

	handlershared "github.com/autoluxe/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CatalogItemRequest 商品写入请求（JSON 或 multipart 表单）
// 洗车服务沿用 serviceName 作为名称字段。
type CatalogItemRequest struct {
	Name        *string       `json:"name"`
	ServiceName *string       `json:"serviceName"`
	Description *string       `json:"description"`
	Price       *models.Money `json:"price"`
	Category    *string       `json:"category"`
	Stock       *int          `json:"stock"`
}

var (
	errCatalogPriceFormat = errors.New("price format invalid")
	errCatalogStockFormat = errors.New("stock format invalid")
)

// CreateCatalogItem 创建商品（需上传 image）
func (h *Handler) CreateCatalogItem(kind models.CatalogKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := bindCatalogItemRequest(c)
		if err != nil {
			respondCatalogBindError(c, err)
			return
		}
		image, closer, err := h.openCatalogImage(c, kind)
		if err != nil {
			respondWithMappedError(c, err, handlershared.UploadErrorRules, response.CodeBadRequest, "error.bad_request")
			return
		}
		if closer != nil {
			defer closer.Close()
		}

		input := service.CreateCatalogItemInput{}
		if name := req.name(); name != nil {
			input.Name = *name
		}
		if req.Description != nil {
			input.Description = *req.Description
		}
		if req.Price != nil {
			input.Price = *req.Price
		}
		if req.Category != nil {
			input.Category = *req.Category
		}
		if req.Stock != nil {
			input.Stock = *req.Stock
		}

		item, err := h.CatalogService.Create(c.Request.Context(), kind, input, image)
		if err != nil {
			respondWithMappedError(c, err, handlershared.CatalogErrorRules, response.CodeInternal, "error.internal")
			return
		}
		response.Created(c, item)
	}
}

// UpdateCatalogItem 部分更新商品（可选替换 image）
func (h *Handler) UpdateCatalogItem(kind models.CatalogKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := bindCatalogItemRequest(c)
		if err != nil {
			respondCatalogBindError(c, err)
			return
		}
		image, closer, err := h.openCatalogImage(c, kind)
		if err != nil {
			respondWithMappedError(c, err, handlershared.UploadErrorRules, response.CodeBadRequest, "error.bad_request")
			return
		}
		if closer != nil {
			defer closer.Close()
		}

		item, err := h.CatalogService.Update(c.Request.Context(), kind, c.Param("id"), service.UpdateCatalogItemInput{
			Name:        req.name(),
			Description: req.Description,
			Price:       req.Price,
			Category:    req.Category,
			Stock:       req.Stock,
		}, image)
		if err != nil {
			respondWithMappedError(c, err, handlershared.CatalogErrorRules, response.CodeInternal, "error.internal")
			return
		}
		response.Success(c, item)
	}
}

// DeleteCatalogItem 删除商品（图片异步释放）
func (h *Handler) DeleteCatalogItem(kind models.CatalogKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.CatalogService.Delete(c.Request.Context(), kind, c.Param("id")); err != nil {
			respondWithMappedError(c, err, handlershared.CatalogErrorRules, response.CodeInternal, "error.internal")
			return
		}
		msg := i18n.T(i18n.ResolveLocale(c), "catalog.removed."+string(kind))
		response.Message(c, response.CodeOK, msg, nil)
	}
}

func (r CatalogItemRequest) name() *string {
	if r.Name != nil {
		return r.Name
	}
	return r.ServiceName
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

func bindCatalogItemRequest(c *gin.Context) (CatalogItemRequest, error) {
	var req CatalogItemRequest
	if !isMultipart(c) {
		if c.Request.ContentLength == 0 {
			return req, nil
		}
		err := c.ShouldBindJSON(&req)
		return req, err
	}

	if value, ok := c.GetPostForm("name"); ok {
		req.Name = &value
	}
	if value, ok := c.GetPostForm("serviceName"); ok {
		req.ServiceName = &value
	}
	if value, ok := c.GetPostForm("description"); ok {
		req.Description = &value
	}
	if value, ok := c.GetPostForm("category"); ok {
		req.Category = &value
	}
	if value, ok := c.GetPostForm("price"); ok && strings.TrimSpace(value) != "" {
		amount, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return req, errCatalogPriceFormat
		}
		price := models.NewMoneyFromDecimal(amount)
		req.Price = &price
	}
	if value, ok := c.GetPostForm("stock"); ok && strings.TrimSpace(value) != "" {
		stock, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return req, errCatalogStockFormat
		}
		req.Stock = &stock
	}
	return req, nil
}

func respondCatalogBindError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errCatalogPriceFormat):
		respondError(c, response.CodeBadRequest, "catalog.price_invalid", nil)
	case errors.Is(err, errCatalogStockFormat):
		respondError(c, response.CodeBadRequest, "catalog.stock_invalid", nil)
	default:
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	}
}

// openCatalogImage 读取可选的 image 文件，未上传时返回 nil
func (h *Handler) openCatalogImage(c *gin.Context, kind models.CatalogKind) (*storage.Object, io.Closer, error) {
	if !isMultipart(c) {
		return nil, nil, nil
	}
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	obj, closer, err := storage.OpenImage(file, kind.Folder(), h.Config.Upload)
	if err != nil {
		requestLog(c).Warnw("catalog_image_rejected", "kind", kind, "filename", file.Filename, "error", err)
		return nil, nil, err
	}
	return &obj, closer, nil
}
