package shared

import (
	"errors"

	"github.com/silkloom/storefront/internal/constants"
	"github.com/silkloom/storefront/internal/http/response"
	"github.com/silkloom/storefront/internal/i18n"
	"github.com/silkloom/storefront/internal/logger"
	"github.com/silkloom/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// FieldError 单个字段的校验失败信息
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get(constants.ContextKeyRequestID); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	RespondErrorWithMsg(c, code, i18n.T(locale, key), err)
}

// RespondErrorWithArgs 返回带格式化参数的国际化错误响应。
func RespondErrorWithArgs(c *gin.Context, code int, key string, args ...interface{}) {
	locale := i18n.ResolveLocale(c)
	response.Error(c, code, i18n.Sprintf(locale, key, args...))
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
		if appErr.IsServerError() && gin.IsDebugging() {
			response.ErrorWithData(c, appErr.Code, appErr.Message, map[string]interface{}{"detail": err.Error()})
			return
		}
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondBindError 渲染请求体绑定失败，校验错误逐字段返回。
func RespondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	items := make([]FieldError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		items = append(items, FieldError{
			Field: fieldErr.Field(),
			Rule:  fieldErr.Tag(),
			Param: fieldErr.Param(),
		})
	}
	msg := i18n.T(i18n.ResolveLocale(c), "error.validation_failed")
	response.ErrorWithData(c, response.CodeBadRequest, msg, map[string]interface{}{"errors": items})
}

// RespondPasswordPolicyError 渲染密码策略错误，成功处理返回 true。
func RespondPasswordPolicyError(c *gin.Context, err error) bool {
	var policyErr service.PasswordPolicyError
	if !errors.As(err, &policyErr) {
		return false
	}
	RespondErrorWithArgs(c, response.CodeBadRequest, policyErr.Key(), policyErr.Args()...)
	return true
}
