package queue

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/silkloom/storefront/internal/config"
	"github.com/silkloom/storefront/internal/constants"
	"github.com/silkloom/storefront/internal/logger"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// MailQueue 邮件队列名称
	MailQueue = constants.QueueMail
)

const (
	mailMaxRetry       = 5
	mailTaskTimeout    = 30 * time.Second
	defaultConcurrency = 10
	shutdownTimeout    = 8 * time.Second
)

// Client 通知任务投递端，未启用队列时投递直接返回
type Client struct {
	inner *asynq.Client
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{inner: asynq.NewClient(redisOpt(cfg))}, nil
}

// Enabled 是否会真正投递
func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

// Close 关闭底层连接
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}

// EnqueueCustomOrderSubmitted 通知店铺有新的定制需求
func (c *Client) EnqueueCustomOrderSubmitted(payload CustomOrderSubmittedPayload, opts ...asynq.Option) error {
	return c.dispatch(TaskCustomOrderSubmitted, payload, opts)
}

// EnqueueCustomOrderStatusChanged 通知顾客定制需求状态变化
func (c *Client) EnqueueCustomOrderStatusChanged(payload CustomOrderStatusChangedPayload, opts ...asynq.Option) error {
	return c.dispatch(TaskCustomOrderStatusChanged, payload, opts)
}

// EnqueueOrderPlaced 发送下单确认
func (c *Client) EnqueueOrderPlaced(payload OrderPlacedPayload, opts ...asynq.Option) error {
	return c.dispatch(TaskOrderPlaced, payload, opts)
}

func (c *Client) dispatch(taskType string, payload interface{}, extra []asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := newJSONTask(taskType, payload)
	if err != nil {
		return fmt.Errorf("build %s task: %w", taskType, err)
	}
	opts := make([]asynq.Option, 0, len(extra)+3)
	opts = append(opts, asynq.Queue(MailQueue), asynq.MaxRetry(mailMaxRetry), asynq.Timeout(mailTaskTimeout))
	opts = append(opts, extra...)

	info, err := c.inner.Enqueue(task, opts...)
	if err != nil {
		return fmt.Errorf("enqueue %s task: %w", taskType, err)
	}
	logger.Debugw("queue_task_enqueued", "type", taskType, "task_id", info.ID, "queue", info.Queue)
	return nil
}

// BuildServerConfig 生成消费端连接与运行参数
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency:     defaultConcurrency,
		Queues:          map[string]int{MailQueue: 2, DefaultQueue: 1},
		ShutdownTimeout: shutdownTimeout,
		Logger:          logger.Named("asynq"),
		ErrorHandler:    asynq.ErrorHandlerFunc(logTaskFailure),
	}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			serverCfg.Concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			serverCfg.Queues = cfg.Queues
		}
	}
	return redisOpt(cfg), serverCfg
}

func logTaskFailure(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	taskID, _ := asynq.GetTaskID(ctx)
	logger.Warnw("queue_task_failed",
		"type", task.Type(),
		"task_id", taskID,
		"retried", retried,
		"max_retry", maxRetry,
		"error", err,
	)
}

func redisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
