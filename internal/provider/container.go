package provider

import (
	"context"
	"time"

	"github.com/silkloom/storefront/internal/authz"
	"github.com/silkloom/storefront/internal/cache"
	"github.com/silkloom/storefront/internal/config"
	"github.com/silkloom/storefront/internal/logger"
	"github.com/silkloom/storefront/internal/models"
	"github.com/silkloom/storefront/internal/queue"
	"github.com/silkloom/storefront/internal/repository"
	"github.com/silkloom/storefront/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo          repository.UserRepository
	ProductRepo       repository.ProductRepository
	CategoryRepo      repository.CategoryRepository
	CartRepo          repository.CartRepository
	ReviewRepo        repository.ReviewRepository
	CustomOrderRepo   repository.CustomOrderRepository
	OrderRepo         repository.OrderRepository
	UserLoginLogRepo  repository.UserLoginLogRepository
	AuthzAuditLogRepo repository.AuthzAuditLogRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	ProductService      *service.ProductService
	CategoryService     *service.CategoryService
	CartService         *service.CartService
	ReviewService       *service.ReviewService
	CustomOrderService  *service.CustomOrderService
	OrderService        *service.OrderService
	UserLoginLogService *service.UserLoginLogService
	AuthzAuditService   *service.AuthzAuditService
}

// NewContainer 初始化容器，依赖 models.DB 已完成初始化
func NewContainer(cfg *config.Config) (*Container, error) {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}
	if cache.Enabled() {
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := cache.Ping(pingCtx); err != nil {
			logger.Warnw("provider_redis_ping_failed", "error", err)
		}
		cancel()
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

// Close 释放容器持有的外部连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.CustomOrderRepo = repository.NewCustomOrderRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
	c.AuthzAuditLogRepo = repository.NewAuthzAuditLogRepository(db)
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}

	catalogTTL := time.Duration(c.Config.Catalog.CacheTTLSeconds) * time.Second

	c.UserLoginLogService = service.NewUserLoginLogService(c.UserLoginLogRepo)
	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditLogRepo)
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.UserLoginLogService)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, catalogTTL)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.ProductRepo, catalogTTL)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo)
	c.CustomOrderService = service.NewCustomOrderService(c.CustomOrderRepo, c.QueueClient)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.QueueClient)
	return nil
}
