package public

import (
	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/i18n"

	"github.com/gin-gonic/gin"
)

// AddReviewRequest 添加评价请求
type AddReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// AddReview 为已签收订单中的商品添加评价
func (h *Handler) AddReview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "review.rating_invalid", nil)
		return
	}
	review, err := h.ReviewService.Add(c.Request.Context(), userID, c.Param("itemId"), req.Rating, req.Comment)
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Message(c, response.CodeOK, i18n.T(i18n.ResolveLocale(c), "review.added"), gin.H{"review": review})
}

// ListReviews 商品评价列表
func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.ReviewService.ListForItem(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, reviews)
}

// DeleteReview 删除评价（本人或管理员）
func (h *Handler) DeleteReview(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		return
	}
	if err := h.ReviewService.Remove(c.Request.Context(), c.Param("reviewId"), caller.UserID, caller.IsAdmin); err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Message(c, response.CodeOK, i18n.T(i18n.ResolveLocale(c), "review.deleted"), nil)
}
