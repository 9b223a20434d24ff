package service

import (
	"unicode"

	"github.com/silkloom/storefront/internal/config"
)

// PasswordPolicyError 密码策略校验失败，携带 i18n 文案键
type PasswordPolicyError struct {
	key  string
	args []interface{}
}

func (e PasswordPolicyError) Error() string {
	return e.key
}

// Is 使 errors.Is(err, ErrWeakPassword) 成立
func (e PasswordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Key 文案键
func (e PasswordPolicyError) Key() string {
	return e.key
}

// Args 文案参数
func (e PasswordPolicyError) Args() []interface{} {
	return e.args
}

type passwordCharClasses struct {
	upper   bool
	lower   bool
	number  bool
	special bool
}

func classifyPassword(password string) passwordCharClasses {
	var classes passwordCharClasses
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			classes.upper = true
		case unicode.IsLower(r):
			classes.lower = true
		case unicode.IsDigit(r):
			classes.number = true
		default:
			classes.special = true
		}
	}
	return classes
}

// ValidatePassword 按配置的密码策略校验密码
func ValidatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return PasswordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	classes := classifyPassword(password)
	rules := []struct {
		required bool
		present  bool
		key      string
	}{
		{policy.RequireUpper, classes.upper, "error.password_require_upper"},
		{policy.RequireLower, classes.lower, "error.password_require_lower"},
		{policy.RequireNumber, classes.number, "error.password_require_number"},
		{policy.RequireSpecial, classes.special, "error.password_require_special"},
	}
	for _, rule := range rules {
		if rule.required && !rule.present {
			return PasswordPolicyError{key: rule.key}
		}
	}
	return nil
}
