package admin

import (
	"bytes"
	"net/http"
	"strings"

	handlershared "github.com/silkloom/storefront/internal/http/handlers/shared"
	"github.com/silkloom/storefront/internal/http/response"
	"github.com/silkloom/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Slug        string          `json:"slug" binding:"required,slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  *uint           `json:"category_id"`
	ImageURLs   []string        `json:"image_urls" binding:"dive,max=500"`
	Features    []string        `json:"features" binding:"dive,max=200"`
	Fabric      string          `json:"fabric" binding:"max=120"`
	WorkDetails string          `json:"work_details" binding:"max=255"`
	InStock     *bool           `json:"in_stock"`
	Featured    *bool           `json:"featured"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       r.Price,
		CategoryID:  r.CategoryID,
		ImageURLs:   r.ImageURLs,
		Features:    r.Features,
		Fabric:      r.Fabric,
		WorkDetails: r.WorkDetails,
		InStock:     r.InStock,
		Featured:    r.Featured,
	}
}

// GetAdminProducts 获取后台商品列表
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	categoryID, ok := handlershared.ParseOptionalUintQuery(c, "category_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.product_filter_invalid", nil)
		return
	}
	products, total, err := h.ProductService.ListAdmin(strings.TrimSpace(c.Query("search")), categoryID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetAdminProduct 获取后台商品详情
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, handlershared.ProductErrorRules, "error.product_fetch_failed")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := h.ProductService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondWithMappedError(c, err, handlershared.ProductErrorRules, "error.product_save_failed")
		return
	}
	requestLog(c).Infow("admin_product_created", "product_id", product.ID, "operator_user_id", currentUserID(c))
	response.Created(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := h.ProductService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, handlershared.ProductErrorRules, "error.product_save_failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品（软删除）
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, handlershared.ProductErrorRules, "error.product_delete_failed")
		return
	}
	requestLog(c).Infow("admin_product_deleted", "product_id", id, "operator_user_id", currentUserID(c))
	response.NoContent(c)
}

// ExportProducts 导出全部商品为 xlsx
func (h *Handler) ExportProducts(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.ProductService.ExportProducts(&buf); err != nil {
		respondError(c, response.CodeInternal, "error.product_export_failed", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="products.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
