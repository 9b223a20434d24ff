package router

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/silkloom/storefront/internal/config"
	"github.com/silkloom/storefront/internal/constants"
	"github.com/silkloom/storefront/internal/http/response"
	"github.com/silkloom/storefront/internal/i18n"
	"github.com/silkloom/storefront/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 从请求中取限流维度
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

// NewRateLimitRule key 形如 <prefix>:rate:<name>:<维度>
func NewRateLimitRule(redisPrefix, name string, cfg config.RateLimitConfig, messageKey string) RateLimitRule {
	prefix := strings.TrimSpace(redisPrefix)
	if prefix == "" {
		prefix = "sf"
	}
	if strings.TrimSpace(messageKey) == "" {
		messageKey = "error.rate_limited"
	}
	return RateLimitRule{
		Prefix:        strings.Join([]string{prefix, "rate", name}, ":"),
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxRequests,
		MessageKey:    messageKey,
	}
}

func (r RateLimitRule) active() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

// 返回 {当前计数, 剩余毫秒}
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {count, redis.call("PTTL", KEYS[1])}
`)

// RateLimitMiddleware 超限返回 429 并带 Retry-After，client 为空时放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	if keyFunc == nil {
		keyFunc = KeyByIP
	}
	return func(c *gin.Context) {
		if client == nil || !rule.active() {
			c.Next()
			return
		}
		subject := strings.TrimSpace(keyFunc(c))
		if subject == "" {
			subject = c.ClientIP()
		}
		key := rule.Prefix + ":" + subject

		window := int64(rule.WindowSeconds) * 1000
		values, err := fixedWindowScript.Run(c.Request.Context(), client, []string{key}, window).Int64Slice()
		if err != nil || len(values) != 2 {
			logger.Warnw("rate_limit_script_failed", "key", key, "error", err)
			response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable"))
			c.Abort()
			return
		}

		count, ttlMillis := values[0], values[1]
		remaining := int64(rule.MaxRequests) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rule.MaxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		if count <= int64(rule.MaxRequests) {
			c.Next()
			return
		}

		wait := retryAfterSeconds(ttlMillis, rule.WindowSeconds)
		c.Header("Retry-After", strconv.Itoa(wait))
		response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(i18n.ResolveLocale(c), rule.MessageKey, wait))
		c.Abort()
	}
}

// retryAfterSeconds 向上取整，key 无过期时间时退回整个窗口
func retryAfterSeconds(ttlMillis int64, windowSeconds int) int {
	if ttlMillis <= 0 {
		if windowSeconds < 1 {
			return 1
		}
		return windowSeconds
	}
	return int((ttlMillis + 999) / 1000)
}

// KeyByIP 按客户端 IP
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 按 JSON 字段加 IP，字段缺失时只用 IP
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(peekJSONString(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

// KeyByUserID 按会话用户，匿名时按 IP
func KeyByUserID(c *gin.Context) string {
	if userID := c.GetUint(constants.ContextKeyUserID); userID > 0 {
		return "user:" + strconv.FormatUint(uint64(userID), 10)
	}
	return c.ClientIP()
}

// peekJSONString 读取请求体中的字符串字段并还原请求体
func peekJSONString(c *gin.Context, field string) string {
	if c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	var value string
	if err := json.Unmarshal(fields[field], &value); err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}
