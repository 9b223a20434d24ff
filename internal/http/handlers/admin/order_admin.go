package admin

import (
	handlershared "github.com/silkloom/storefront/internal/http/handlers/shared"
	"github.com/silkloom/storefront/internal/http/response"
	"github.com/silkloom/storefront/internal/repository"

	"github.com/gin-gonic/gin"
)

// OrderListQuery 订单列表查询参数
type OrderListQuery struct {
	Status      string `form:"status" binding:"omitempty,order_status"`
	UserID      uint   `form:"user_id"`
	CreatedFrom string `form:"created_from"`
	CreatedTo   string `form:"created_to"`
}

// GetAdminOrders 获取后台订单列表
func (h *Handler) GetAdminOrders(c *gin.Context) {
	var query OrderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}
	createdFrom, err := parseTimeNullable(query.CreatedFrom)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	createdTo, err := parseTimeNullable(query.CreatedTo)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	page, pageSize := handlershared.ReadPagination(c)
	orders, total, err := h.OrderService.ListAdmin(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      query.UserID,
		Status:      query.Status,
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondWithMappedError(c, err, handlershared.OrderErrorRules, "error.order_fetch_failed")
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// UpdateOrderStatus 按流转表变更订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	order, err := h.OrderService.UpdateStatus(id, req.Status)
	if err != nil {
		respondWithMappedError(c, err, handlershared.OrderErrorRules, "error.order_update_failed")
		return
	}
	requestLog(c).Infow("admin_order_status_updated",
		"order_id", order.ID,
		"status", order.Status,
		"operator_user_id", currentUserID(c),
	)
	response.Success(c, order)
}
