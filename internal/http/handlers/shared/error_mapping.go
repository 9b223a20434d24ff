package shared

import (
	"errors"

	"github.com/silkloom/storefront/internal/http/response"
	"github.com/silkloom/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// MappedError 定义业务错误到接口错误响应的映射关系。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// RespondWithMappedError 按规则表映射业务错误，未命中时返回兜底错误并记录原始错误。
func RespondWithMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	if RespondPasswordPolicyError(c, err) {
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	if appErr, ok := response.AsAppError(err); ok {
		RespondErrorWithMsg(c, appErr.Code, appErr.Message, appErr.Err)
		return
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatMappedErrors 合并多组映射规则。
func ConcatMappedErrors(groups ...[]MappedError) []MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// ProductErrorRules 商品相关错误
var ProductErrorRules = []MappedError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductInvalid, Code: response.CodeBadRequest, Key: "error.product_invalid"},
	{Target: service.ErrProductPriceInvalid, Code: response.CodeBadRequest, Key: "error.product_price_invalid"},
	{Target: service.ErrSlugExists, Code: response.CodeBadRequest, Key: "error.slug_exists"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeBadRequest, Key: "error.category_not_found"},
}

// CategoryErrorRules 分类相关错误
var CategoryErrorRules = []MappedError{
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrCategoryInvalid, Code: response.CodeBadRequest, Key: "error.category_invalid"},
	{Target: service.ErrCategoryInUse, Code: response.CodeBadRequest, Key: "error.category_in_use"},
	{Target: service.ErrSlugExists, Code: response.CodeBadRequest, Key: "error.slug_exists"},
}

// CartErrorRules 购物车相关错误
var CartErrorRules = []MappedError{
	{Target: service.ErrCartQuantityInvalid, Code: response.CodeBadRequest, Key: "error.cart_quantity_invalid"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrCartItemNotFound, Code: response.CodeNotFound, Key: "error.cart_item_not_found"},
	{Target: service.ErrCartItemForbidden, Code: response.CodeForbidden, Key: "error.cart_item_forbidden"},
}

// ReviewErrorRules 评价相关错误
var ReviewErrorRules = []MappedError{
	{Target: service.ErrReviewRatingInvalid, Code: response.CodeBadRequest, Key: "error.review_rating_invalid"},
	{Target: service.ErrReviewCommentInvalid, Code: response.CodeBadRequest, Key: "error.review_comment_invalid"},
	{Target: service.ErrReviewNotFound, Code: response.CodeNotFound, Key: "error.review_not_found"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
}

// CustomOrderErrorRules 定制需求相关错误
var CustomOrderErrorRules = []MappedError{
	{Target: service.ErrCustomOrderInvalid, Code: response.CodeBadRequest, Key: "error.custom_order_invalid"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrCustomOrderBudgetInvalid, Code: response.CodeBadRequest, Key: "error.custom_order_budget_invalid"},
	{Target: service.ErrCustomOrderNotFound, Code: response.CodeNotFound, Key: "error.custom_order_not_found"},
	{Target: service.ErrCustomOrderStatusInvalid, Code: response.CodeBadRequest, Key: "error.custom_order_status_invalid"},
	{Target: service.ErrCustomOrderTransitionInvalid, Code: response.CodeBadRequest, Key: "error.custom_order_transition_invalid"},
}

// OrderErrorRules 订单相关错误
var OrderErrorRules = []MappedError{
	{Target: service.ErrCartEmpty, Code: response.CodeBadRequest, Key: "error.cart_empty"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrOrderStatusInvalid, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
	{Target: service.ErrOrderTransitionInvalid, Code: response.CodeBadRequest, Key: "error.order_transition_invalid"},
}

// AuthErrorRules 账户相关错误
var AuthErrorRules = []MappedError{
	{Target: service.ErrUsernameExists, Code: response.CodeBadRequest, Key: "error.username_exists"},
	{Target: service.ErrUsernameInvalid, Code: response.CodeBadRequest, Key: "error.username_invalid"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.invalid_credentials"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrTokenInvalid, Code: response.CodeUnauthorized, Key: "error.token_invalid"},
	{Target: service.ErrTokenRevoked, Code: response.CodeUnauthorized, Key: "error.token_revoked"},
	{Target: service.ErrJWTSecretMissing, Code: response.CodeInternal, Key: "error.jwt_secret_missing"},
}

// CaptchaErrorRules 验证码相关错误
var CaptchaErrorRules = []MappedError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeInternal, Key: "error.captcha_verify_failed"},
	{Target: service.ErrCaptchaVerifyFailed, Code: response.CodeInternal, Key: "error.captcha_verify_failed"},
}
