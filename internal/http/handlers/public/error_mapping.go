package public

import (
	handlershared "github.com/silkloom/storefront/internal/http/handlers/shared"
	"github.com/silkloom/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError = handlershared.MappedError

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackKey string) {
	handlershared.RespondWithMappedError(c, err, rules, response.CodeInternal, fallbackKey)
}

var customOrderSubmitErrorRules = handlershared.ConcatMappedErrors(
	handlershared.CustomOrderErrorRules,
	handlershared.CaptchaErrorRules,
)

var loginErrorRules = handlershared.ConcatMappedErrors(
	handlershared.AuthErrorRules,
	handlershared.CaptchaErrorRules,
)

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, handlershared.CartErrorRules, "error.cart_update_failed")
}

func respondReviewError(c *gin.Context, err error, fallbackKey string) {
	respondWithMappedError(c, err, handlershared.ReviewErrorRules, fallbackKey)
}

func respondOrderError(c *gin.Context, err error, fallbackKey string) {
	respondWithMappedError(c, err, handlershared.OrderErrorRules, fallbackKey)
}
