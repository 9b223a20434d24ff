package worker

import (
	"context"
	"errors"
	"strings"

	"github.com/silkloom/storefront/internal/logger"
	"github.com/silkloom/storefront/internal/models"
	"github.com/silkloom/storefront/internal/provider"
	"github.com/silkloom/storefront/internal/queue"
	"github.com/silkloom/storefront/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// NewServeMux 创建并注册任务路由
func (c *Consumer) NewServeMux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	c.Register(mux)
	return mux
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCustomOrderSubmitted, c.handleCustomOrderSubmitted)
	mux.HandleFunc(queue.TaskCustomOrderStatusChanged, c.handleCustomOrderStatusChanged)
	mux.HandleFunc(queue.TaskOrderPlaced, c.handleOrderPlaced)
}

func (c *Consumer) handleCustomOrderSubmitted(_ context.Context, task *asynq.Task) error {
	var payload queue.CustomOrderSubmittedPayload
	if err := queue.DecodePayload(task, &payload); err != nil {
		logger.Warnw("worker_custom_order_submitted_decode_failed", "error", err)
		return skipRetry(err)
	}
	inbox := ""
	if c.Config != nil {
		inbox = strings.TrimSpace(c.Config.Notify.ShopInbox)
	}
	if inbox == "" {
		logger.Debugw("worker_custom_order_submitted_skip_no_inbox", "request_id", payload.RequestID)
		return nil
	}
	request, err := c.loadCustomOrder(payload.RequestID)
	if err != nil || request == nil {
		return err
	}
	err = c.EmailService.SendCustomOrderSubmitted(inbox, request, payload.Locale)
	return c.finishSend("worker_custom_order_submitted", request.ID, err)
}

func (c *Consumer) handleCustomOrderStatusChanged(_ context.Context, task *asynq.Task) error {
	var payload queue.CustomOrderStatusChangedPayload
	if err := queue.DecodePayload(task, &payload); err != nil {
		logger.Warnw("worker_custom_order_status_decode_failed", "error", err)
		return skipRetry(err)
	}
	request, err := c.loadCustomOrder(payload.RequestID)
	if err != nil || request == nil {
		return err
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = request.Status
	}
	err = c.EmailService.SendCustomOrderStatus(request, status, payload.Locale)
	return c.finishSend("worker_custom_order_status", request.ID, err)
}

func (c *Consumer) handleOrderPlaced(_ context.Context, task *asynq.Task) error {
	var payload queue.OrderPlacedPayload
	if err := queue.DecodePayload(task, &payload); err != nil {
		logger.Warnw("worker_order_placed_decode_failed", "error", err)
		return skipRetry(err)
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_placed_skip_invalid_payload")
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_placed_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_placed_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	user, err := c.UserRepo.GetByID(order.UserID)
	if err != nil {
		logger.Warnw("worker_order_placed_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
		return err
	}
	if user == nil || strings.TrimSpace(user.Email) == "" {
		logger.Debugw("worker_order_placed_skip_empty_receiver", "order_id", order.ID)
		return nil
	}
	err = c.EmailService.SendOrderPlaced(strings.TrimSpace(user.Email), user.DisplayName(), order, payload.Locale)
	return c.finishSend("worker_order_placed", order.ID, err)
}

func (c *Consumer) loadCustomOrder(id uint) (*models.CustomOrderRequest, error) {
	if id == 0 {
		logger.Debugw("worker_custom_order_skip_invalid_payload")
		return nil, nil
	}
	request, err := c.CustomOrderRepo.GetByID(id)
	if err != nil {
		logger.Warnw("worker_custom_order_fetch_failed", "request_id", id, "error", err)
		return nil, err
	}
	if request == nil {
		logger.Debugw("worker_custom_order_skip_not_found", "request_id", id)
	}
	return request, nil
}

// finishSend 统一处理发送结果，配置类错误不重试
func (c *Consumer) finishSend(event string, id uint, err error) error {
	if err == nil {
		logger.Infow(event+"_sent", "id", id)
		return nil
	}
	switch {
	case errors.Is(err, service.ErrEmailServiceDisabled), errors.Is(err, service.ErrEmailServiceNotConfigured):
		logger.Debugw(event+"_skip_email_disabled", "id", id)
		return nil
	case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrEmailRecipientRejected):
		logger.Warnw(event+"_receiver_rejected", "id", id, "error", err)
		return skipRetry(err)
	}
	logger.Warnw(event+"_send_failed", "id", id, "error", err)
	return err
}

func skipRetry(err error) error {
	return errors.Join(err, asynq.SkipRetry)
}
