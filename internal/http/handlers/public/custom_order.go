package public

import (
	"strings"

	"github.com/silkloom/storefront/internal/constants"
	"github.com/silkloom/storefront/internal/http/response"
	"github.com/silkloom/storefront/internal/i18n"
	"github.com/silkloom/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CustomOrderRequest 定制需求提交请求
type CustomOrderRequest struct {
	Name           string                       `json:"name" binding:"required,max=120"`
	Email          string                       `json:"email" binding:"required,max=255"`
	Phone          string                       `json:"phone" binding:"max=50"`
	Requirements   string                       `json:"requirements" binding:"required,max=5000"`
	Budget         *decimal.Decimal             `json:"budget"`
	CaptchaPayload service.CaptchaVerifyPayload `json:"captcha_payload"`
}

// SubmitCustomOrder 提交定制需求，匿名提交需通过验证码（场景启用时）
func (h *Handler) SubmitCustomOrder(c *gin.Context) {
	var req CustomOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID := optionalUserID(c)
	if userID == nil {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneCustomOrder, req.CaptchaPayload); err != nil {
			respondWithMappedError(c, err, customOrderSubmitErrorRules, "error.captcha_verify_failed")
			return
		}
	}

	request, err := h.CustomOrderService.Submit(service.CustomOrderInput{
		UserID:       userID,
		Name:         req.Name,
		Email:        strings.TrimSpace(req.Email),
		Phone:        req.Phone,
		Requirements: req.Requirements,
		Budget:       req.Budget,
		Locale:       i18n.ResolveLocale(c),
	})
	if err != nil {
		respondWithMappedError(c, err, customOrderSubmitErrorRules, "error.custom_order_submit_failed")
		return
	}
	response.Created(c, request)
}
