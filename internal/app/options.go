package app

import (
	"os"
	"strings"
	"time"

	"github.com/silkloom/storefront/internal/config"
	"github.com/silkloom/storefront/internal/logger"

	"go.uber.org/zap"
)

// 进程角色：all 同时提供 API 与消费任务
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 10 * time.Second

// Options 进程启动参数，零值字段取默认
type Options struct {
	Config          *config.Config
	Mode            string
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
}

func normalizeOptions(opts Options) Options {
	opts.Mode = strings.ToLower(strings.TrimSpace(opts.Mode))
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	return opts
}

func isKnownMode(mode string) bool {
	return servesHTTP(mode) || servesWorker(mode)
}

func servesHTTP(mode string) bool {
	return mode == ModeAll || mode == ModeAPI
}

func servesWorker(mode string) bool {
	return mode == ModeAll || mode == ModeWorker
}
