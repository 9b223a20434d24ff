package router

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/silkloom/storefront/internal/authz"
	"github.com/silkloom/storefront/internal/config"
	"github.com/silkloom/storefront/internal/constants"
	"github.com/silkloom/storefront/internal/http/response"
	"github.com/silkloom/storefront/internal/i18n"
	"github.com/silkloom/storefront/internal/logger"
	"github.com/silkloom/storefront/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// SessionValidator 会话校验接口
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*service.SessionUser, error)
}

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	return cors.New(buildCORSConfig(cfg))
}

func buildCORSConfig(cfg config.CORSConfig) cors.Config {
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader}
	}
	corsCfg := cors.Config{
		AllowMethods:     allowedMethods,
		AllowHeaders:     allowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", requestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge) * time.Second,
	}

	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			// 携带凭证时浏览器不接受 "*"，按请求 Origin 回显
			corsCfg.AllowOriginFunc = func(string) bool { return true }
			return corsCfg
		}
		origins = append(origins, origin)
	}
	if len(origins) == 0 {
		corsCfg.AllowOriginFunc = func(string) bool { return true }
		return corsCfg
	}
	corsCfg.AllowOrigins = origins
	return corsCfg
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequestID, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			entry.Errorw("request", "errors", c.Errors.String())
			return
		}
		entry.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyRequestID)
}

// SessionAuthMiddleware 会话鉴权中间件，Token 来自 Bearer 头或会话 Cookie
func SessionAuthMiddleware(validator SessionValidator, cookieName string) gin.HandlerFunc {
	return sessionMiddleware(validator, cookieName, true)
}

// OptionalSessionMiddleware 可选会话中间件，无有效会话时按匿名继续
func OptionalSessionMiddleware(validator SessionValidator, cookieName string) gin.HandlerFunc {
	return sessionMiddleware(validator, cookieName, false)
}

func sessionMiddleware(validator SessionValidator, cookieName string, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractSessionToken(c, cookieName)
		if token == "" || validator == nil {
			if required {
				abortWithError(c, response.CodeUnauthorized, "error.unauthorized")
				return
			}
			c.Next()
			return
		}

		user, err := validator.ValidateSession(c.Request.Context(), token)
		if err != nil {
			if !required {
				c.Next()
				return
			}
			switch {
			case errors.Is(err, service.ErrTokenRevoked):
				abortWithError(c, response.CodeUnauthorized, "error.token_revoked")
			case errors.Is(err, service.ErrJWTSecretMissing):
				abortWithError(c, response.CodeUnauthorized, "error.jwt_secret_missing")
			case service.IsSessionError(err):
				abortWithError(c, response.CodeUnauthorized, "error.token_invalid")
			default:
				logger.SW("request_id", getRequestID(c)).Errorw("session_validate_failed", "error", err)
				abortWithError(c, response.CodeInternal, "error.internal")
			}
			return
		}

		c.Set(constants.ContextKeyUserID, user.UserID)
		c.Set(constants.ContextKeyUsername, user.Username)
		c.Set(constants.ContextKeyIsAdmin, user.IsAdmin)
		c.Next()
	}
}

func extractSessionToken(c *gin.Context, cookieName string) string {
	if authHeader := strings.TrimSpace(c.GetHeader("Authorization")); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookieName == "" {
		return ""
	}
	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(token)
}

// AdminRequiredMiddleware 管理员身份校验
func AdminRequiredMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(constants.ContextKeyIsAdmin) {
			logger.Warnw("admin_access_denied",
				"user_id", c.GetUint(constants.ContextKeyUserID),
				"path", c.Request.URL.Path,
			)
			abortWithError(c, response.CodeForbidden, "error.admin_required")
			return
		}
		c.Next()
	}
}

// AdminRBACMiddleware 管理端 RBAC 鉴权中间件
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			abortWithError(c, response.CodeForbidden, "error.forbidden")
			return
		}

		userID := c.GetUint(constants.ContextKeyUserID)
		if userID == 0 {
			abortWithError(c, response.CodeUnauthorized, "error.unauthorized")
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceUser(userID, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"user_id", userID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortWithError(c, response.CodeInternal, "error.internal")
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"user_id", userID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			abortWithError(c, response.CodeForbidden, "error.forbidden")
			return
		}

		c.Next()
	}
}

func abortWithError(c *gin.Context, code int, key string) {
	response.Error(c, code, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}
