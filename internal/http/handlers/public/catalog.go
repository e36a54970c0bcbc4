package public

import (
	"strings"

	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/models"

	handlershared "github.com/autoluxe/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// ListCatalogItems 商品列表（keyword 模糊匹配名称，pageNumber 分页）
func (h *Handler) ListCatalogItems(kind models.CatalogKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		keyword := strings.TrimSpace(c.Query("keyword"))
		page := handlershared.ParsePageNumber(c)

		result, err := h.CatalogService.List(c.Request.Context(), kind, keyword, page)
		if err != nil {
			respondWithMappedError(c, err, handlershared.CatalogErrorRules, response.CodeInternal, "error.internal")
			return
		}
		response.Page(c, kind.Folder(), result.Items, result.Page, result.Pages)
	}
}

// GetCatalogItem 商品详情
func (h *Handler) GetCatalogItem(kind models.CatalogKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := h.CatalogService.Get(c.Request.Context(), kind, c.Param("id"))
		if err != nil {
			respondWithMappedError(c, err, handlershared.CatalogErrorRules, response.CodeInternal, "error.internal")
			return
		}
		response.Success(c, item)
	}
}

// GetUnifiedProducts 跨种类商品列表
func (h *Handler) GetUnifiedProducts(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("keyword"))
	category := strings.TrimSpace(c.Query("category"))
	page := handlershared.ParsePageNumber(c)

	result, err := h.UnifiedCatalogService.List(c.Request.Context(), keyword, category, page)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Page(c, "products", result.Items, result.Page, result.Pages)
}

// GetUnifiedProductDetail 按 ID、名称与类目查询商品详情
func (h *Handler) GetUnifiedProductDetail(c *gin.Context) {
	item, err := h.UnifiedCatalogService.Get(
		c.Request.Context(),
		c.Param("id"),
		c.Query("name"),
		c.Query("category"),
	)
	if err != nil {
		respondWithMappedError(c, err, handlershared.CatalogErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, item)
}
