package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/silkloom/storefront/internal/config"
	"github.com/silkloom/storefront/internal/constants"
	"github.com/silkloom/storefront/internal/logger"
	"github.com/silkloom/storefront/internal/models"
	"github.com/silkloom/storefront/internal/provider"
	"github.com/silkloom/storefront/internal/router"
	"github.com/silkloom/storefront/internal/worker"
)

const (
	envAdminUsername = "STOREFRONT_ADMIN_USERNAME"
	envAdminPassword = "STOREFRONT_ADMIN_PASSWORD"
)

// PrepareDatabase 建立连接并完成迁移
func PrepareDatabase(cfg *config.Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := models.InitDB(models.DBOptions{
		Driver:      cfg.Database.Driver,
		DSN:         cfg.Database.DSN,
		Mode:        cfg.Server.Mode,
		SlowQueryMS: cfg.Database.SlowQueryMS,
		Pool: models.DBPoolConfig{
			MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		},
	}); err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	if err := models.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// ensureDefaultAdmin 生产模式下未配置密码时跳过默认管理员初始化
func ensureDefaultAdmin(cfg *config.Config) {
	username := strings.TrimSpace(os.Getenv(envAdminUsername))
	password := os.Getenv(envAdminPassword)
	if cfg.Server.IsRelease() && password == "" {
		logger.Warnw("default_admin_skip_missing_password", "env", envAdminPassword)
		return
	}
	if err := models.InitDefaultAdmin(username, password); err != nil {
		logger.Warnw("default_admin_init_failed", "error", err)
	}
}

// grantBuiltinRoles 为尚未分配角色的管理员授予超级管理员
func grantBuiltinRoles(container *provider.Container) {
	if container == nil || container.AuthzService == nil || container.UserRepo == nil {
		return
	}
	adminIDs, err := container.UserRepo.ListAdminIDs()
	if err != nil {
		logger.Warnw("authz_list_admins_failed", "error", err)
		return
	}
	granted, err := container.AuthzService.EnsureDefaultRole(adminIDs, constants.RoleSuperAdmin)
	if err != nil {
		logger.Warnw("authz_default_role_failed", "error", err)
		return
	}
	if granted > 0 {
		logger.Infow("authz_default_role_granted", "count", granted, "role", constants.RoleSuperAdmin)
	}
}

// BuildRunner 构建服务运行器，数据库需已就绪
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if !isKnownMode(mode) {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	ensureDefaultAdmin(cfg)

	container, err := provider.NewContainer(cfg)
	if err != nil {
		return nil, err
	}
	grantBuiltinRoles(container)

	var services []Service

	if servesHTTP(mode) {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(cfg.Server.Addr(), engine))
	}

	if servesWorker(mode) {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		switch {
		case err == nil:
			services = append(services, workerService)
		case mode == ModeWorker:
			container.Close()
			return nil, err
		default:
			logger.Warnw("worker_disabled", "error", err)
		}
	}

	if len(services) == 0 {
		container.Close()
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(container.Close, services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	if err := PrepareDatabase(opts.Config); err != nil {
		return err
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Addr(), "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
