package public

import (
	"strconv"
	"strings"

	"github.com/silkloom/storefront/internal/http/response"
	"github.com/silkloom/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetProducts 获取商品列表（按条件过滤，不分页）
func (h *Handler) GetProducts(c *gin.Context) {
	query, ok := parseProductQuery(c)
	if !ok {
		respondError(c, response.CodeBadRequest, "error.product_filter_invalid", nil)
		return
	}
	products, err := h.ProductService.ListPublic(c.Request.Context(), query)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, products)
}

// GetProductBySlug 获取商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	product, err := h.ProductService.GetPublicBySlug(c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
		}, "error.product_fetch_failed")
		return
	}
	response.Success(c, product)
}

func parseProductQuery(c *gin.Context) (service.ProductQuery, bool) {
	query := service.ProductQuery{
		CategorySlug: strings.TrimSpace(c.Query("category")),
		Search:       strings.TrimSpace(c.Query("search")),
		Fabric:       strings.TrimSpace(c.Query("fabric")),
		WorkDetails:  strings.TrimSpace(c.Query("workDetails")),
	}

	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return query, false
		}
		categoryID := uint(id)
		query.CategoryID = &categoryID
	}

	var ok bool
	if query.Featured, ok = parseOptionalBool(c.Query("featured")); !ok {
		return query, false
	}
	if query.InStock, ok = parseOptionalBool(c.Query("inStock")); !ok {
		return query, false
	}
	if query.MinPrice, ok = parseOptionalDecimal(c.Query("minPrice")); !ok {
		return query, false
	}
	if query.MaxPrice, ok = parseOptionalDecimal(c.Query("maxPrice")); !ok {
		return query, false
	}
	return query, true
}

func parseOptionalBool(raw string) (*bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, false
	}
	return &value, true
}

func parseOptionalDecimal(raw string) (*decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, false
	}
	return &value, true
}
