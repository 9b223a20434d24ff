package router

import (
	"sort"
	"strings"

	"github.com/silkloom/storefront/internal/authz"
	"github.com/silkloom/storefront/internal/cache"
	"github.com/silkloom/storefront/internal/config"
	adminhandlers "github.com/silkloom/storefront/internal/http/handlers/admin"
	publichandlers "github.com/silkloom/storefront/internal/http/handlers/public"
	"github.com/silkloom/storefront/internal/http/response"
	"github.com/silkloom/storefront/internal/logger"
	"github.com/silkloom/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	RegisterValidators()
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisClient := cache.Client()
	loginRule := NewRateLimitRule(cfg.Redis.Prefix, "login", cfg.Security.LoginRateLimit, "error.login_too_many")
	customOrderRule := NewRateLimitRule(cfg.Redis.Prefix, "custom_order", cfg.Security.CustomOrderRateLimit, "error.rate_limited")
	helpfulRule := NewRateLimitRule(cfg.Redis.Prefix, "review_helpful", cfg.Security.HelpfulRateLimit, "error.rate_limited")

	sessionAuth := SessionAuthMiddleware(c.AuthService, cfg.Session.CookieName)
	optionalSession := OptionalSessionMiddleware(c.AuthService, cfg.Session.CookieName)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/:slug", publicHandler.GetProductBySlug)
		apiV1.GET("/products/:slug/reviews", publicHandler.GetProductReviews)
		apiV1.GET("/products/:slug/reviews/summary", publicHandler.GetProductReviewSummary)
		apiV1.GET("/categories", publicHandler.GetCategories)
		apiV1.GET("/categories/:slug", publicHandler.GetCategoryBySlug)
		apiV1.GET("/captcha/image", publicHandler.GetImageCaptcha)
		apiV1.POST("/custom-order",
			optionalSession,
			RateLimitMiddleware(redisClient, customOrderRule, KeyByIP),
			publicHandler.SubmitCustomOrder,
		)

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), publicHandler.Login)
			auth.POST("/logout", optionalSession, publicHandler.Logout)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(sessionAuth)
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.GET("/me/login-logs", publicHandler.GetMyLoginLogs)
			user.GET("/cart", publicHandler.GetCart)
			user.GET("/cart/summary", publicHandler.GetCartSummary)
			user.POST("/cart", publicHandler.AddCartItem)
			user.PUT("/cart/:id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/:id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/products/:slug/reviews", publicHandler.SubmitProductReview)
			user.POST("/reviews/:id/helpful", RateLimitMiddleware(redisClient, helpfulRule, KeyByUserID), publicHandler.MarkReviewHelpful)
			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(sessionAuth, AdminRequiredMiddleware(), AdminRBACMiddleware(c.AuthzService))
		{
			// 商品管理
			admin.GET("/products", adminHandler.GetAdminProducts)
			admin.GET("/products/export", adminHandler.ExportProducts)
			admin.GET("/products/:id", adminHandler.GetAdminProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			// 分类管理
			admin.GET("/categories", adminHandler.GetAdminCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			// 定制需求
			admin.GET("/custom-orders", adminHandler.GetCustomOrders)
			admin.GET("/custom-orders/:id", adminHandler.GetCustomOrder)
			admin.PUT("/custom-orders/:id/status", adminHandler.UpdateCustomOrderStatus)

			// 订单管理
			admin.GET("/orders", adminHandler.GetAdminOrders)
			admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)

			// 权限管理
			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.GET("/authz/audit-logs", adminHandler.GetAuthzAuditLogs)
			admin.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
				response.Success(ctx, buildAdminPermissionCatalog(r))
			})
			admin.GET("/users", adminHandler.GetAdminUsers)
			admin.GET("/users/:id", adminHandler.GetAdminUser)
			admin.GET("/users/:id/roles", adminHandler.GetUserRoles)
			admin.PUT("/users/:id/roles", adminHandler.SetUserRoles)
			admin.GET("/user-login-logs", adminHandler.GetUserLoginLogs)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
