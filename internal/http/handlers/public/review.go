package public

import (
	"github.com/silkloom/storefront/internal/http/response"
	"github.com/silkloom/storefront/internal/models"
	"github.com/silkloom/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitReviewRequest 提交评价请求
type SubmitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment" binding:"max=2000"`
}

// GetProductReviews 获取商品评价（最新优先），:slug 支持数字 ID
func (h *Handler) GetProductReviews(c *gin.Context) {
	product, ok := h.resolveReviewProduct(c)
	if !ok {
		return
	}
	reviews, err := h.ReviewService.ListForProduct(product.ID)
	if err != nil {
		respondReviewError(c, err, "error.review_fetch_failed")
		return
	}
	response.Success(c, reviews)
}

// GetProductReviewSummary 获取商品评价统计
func (h *Handler) GetProductReviewSummary(c *gin.Context) {
	product, ok := h.resolveReviewProduct(c)
	if !ok {
		return
	}
	stats, err := h.ReviewService.Summary(product.ID)
	if err != nil {
		respondReviewError(c, err, "error.review_fetch_failed")
		return
	}
	response.Success(c, stats)
}

// SubmitProductReview 提交或覆盖当前用户对商品的评价，新建返回 201，覆盖返回 200
func (h *Handler) SubmitProductReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, ok := h.resolveReviewProduct(c)
	if !ok {
		return
	}
	review, created, err := h.ReviewService.Submit(service.SubmitReviewInput{
		UserID:    uid,
		ProductID: product.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondReviewError(c, err, "error.review_submit_failed")
		return
	}
	if !created {
		response.Success(c, review)
		return
	}
	response.Created(c, review)
}

// MarkReviewHelpful 评价有用计数 +1
func (h *Handler) MarkReviewHelpful(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	review, err := h.ReviewService.MarkHelpful(reviewID)
	if err != nil {
		respondReviewError(c, err, "error.review_submit_failed")
		return
	}
	response.Success(c, review)
}

func (h *Handler) resolveReviewProduct(c *gin.Context) (*models.Product, bool) {
	product, err := h.ProductService.Resolve(c.Param("slug"))
	if err != nil {
		respondReviewError(c, err, "error.product_fetch_failed")
		return nil, false
	}
	return product, true
}
