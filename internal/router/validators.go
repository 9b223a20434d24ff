package router

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/silkloom/storefront/internal/logger"
	"github.com/silkloom/storefront/internal/service"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var registerValidatorsOnce sync.Once

// RegisterValidators 注册自定义绑定校验规则，字段名使用 json/form 标签
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			logger.Warnw("binding_validator_engine_unexpected")
			return
		}
		engine.RegisterTagNameFunc(fieldTagName)
		rules := map[string]validator.Func{
			"slug":                validateSlug,
			"custom_order_status": validateCustomOrderStatus,
			"order_status":        validateOrderStatus,
		}
		for tag, fn := range rules {
			if err := engine.RegisterValidation(tag, fn); err != nil {
				logger.Errorw("binding_validator_register_failed", "tag", tag, "error", err)
			}
		}
	})
}

func fieldTagName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(strings.ToLower(strings.TrimSpace(fl.Field().String())))
}

func validateCustomOrderStatus(fl validator.FieldLevel) bool {
	return service.NormalizeCustomOrderStatus(fl.Field().String()) != ""
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	return service.NormalizeOrderStatus(fl.Field().String()) != ""
}
