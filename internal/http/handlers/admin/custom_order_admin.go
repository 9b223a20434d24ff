package admin

import (
	handlershared "github.com/silkloom/storefront/internal/http/handlers/shared"
	"github.com/silkloom/storefront/internal/http/response"
	"github.com/silkloom/storefront/internal/i18n"
	"github.com/silkloom/storefront/internal/repository"

	"github.com/gin-gonic/gin"
)

// CustomOrderListQuery 定制需求列表查询参数
type CustomOrderListQuery struct {
	Status string `form:"status" binding:"omitempty,custom_order_status"`
	Email  string `form:"email" binding:"omitempty,max=255"`
}

// StatusRequest 状态变更请求
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetCustomOrders 获取定制需求列表（最新在前）
func (h *Handler) GetCustomOrders(c *gin.Context) {
	var query CustomOrderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}
	page, pageSize := handlershared.ReadPagination(c)
	requests, total, err := h.CustomOrderService.List(repository.CustomOrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   query.Status,
		Email:    query.Email,
	})
	if err != nil {
		respondWithMappedError(c, err, handlershared.CustomOrderErrorRules, "error.custom_order_fetch_failed")
		return
	}
	response.SuccessWithPage(c, requests, response.BuildPagination(page, pageSize, total))
}

// GetCustomOrder 获取定制需求详情
func (h *Handler) GetCustomOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	request, err := h.CustomOrderService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, handlershared.CustomOrderErrorRules, "error.custom_order_fetch_failed")
		return
	}
	response.Success(c, request)
}

// UpdateCustomOrderStatus 按流转表变更定制需求状态
func (h *Handler) UpdateCustomOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	request, err := h.CustomOrderService.SetStatus(id, req.Status, i18n.ResolveLocale(c))
	if err != nil {
		respondWithMappedError(c, err, handlershared.CustomOrderErrorRules, "error.custom_order_update_failed")
		return
	}
	requestLog(c).Infow("admin_custom_order_status_updated",
		"custom_order_id", request.ID,
		"status", request.Status,
		"operator_user_id", currentUserID(c),
	)
	response.Success(c, request)
}
