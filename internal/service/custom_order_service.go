package service

import (
	"strings"

	"github.com/silkloom/storefront/internal/constants"
	"github.com/silkloom/storefront/internal/logger"
	"github.com/silkloom/storefront/internal/models"
	"github.com/silkloom/storefront/internal/queue"
	"github.com/silkloom/storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// CustomOrderInput 定制需求提交输入
type CustomOrderInput struct {
	UserID       *uint
	Name         string
	Email        string
	Phone        string
	Requirements string
	Budget       *decimal.Decimal
	Locale       string
}

// CustomOrderService 定制需求服务
type CustomOrderService struct {
	repo        repository.CustomOrderRepository
	queueClient *queue.Client
}

// NewCustomOrderService 创建定制需求服务
func NewCustomOrderService(repo repository.CustomOrderRepository, queueClient *queue.Client) *CustomOrderService {
	return &CustomOrderService{repo: repo, queueClient: queueClient}
}

// Submit 提交定制需求，初始状态为 new，并投递店铺通知任务
func (s *CustomOrderService) Submit(input CustomOrderInput) (*models.CustomOrderRequest, error) {
	name := strings.TrimSpace(input.Name)
	requirements := strings.TrimSpace(input.Requirements)
	if name == "" || strings.TrimSpace(input.Email) == "" || requirements == "" {
		return nil, ErrCustomOrderInvalid
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	request := &models.CustomOrderRequest{
		UserID:       input.UserID,
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		Requirements: requirements,
		Status:       constants.CustomOrderStatusNew,
	}
	if input.Budget != nil {
		budget := input.Budget.Round(2)
		if !budget.GreaterThan(decimal.Zero) {
			return nil, ErrCustomOrderBudgetInvalid
		}
		money := models.NewMoneyFromDecimal(budget)
		request.Budget = &money
	}

	if err := s.repo.Create(request); err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueCustomOrderSubmitted(queue.CustomOrderSubmittedPayload{
		RequestID: request.ID,
		Locale:    input.Locale,
	}); err != nil {
		logger.Warnw("custom_order_submitted_enqueue_failed", "request_id", request.ID, "error", err)
	}
	return request, nil
}

// GetByID 获取定制需求
func (s *CustomOrderService) GetByID(id uint) (*models.CustomOrderRequest, error) {
	request, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrCustomOrderNotFound
	}
	return request, nil
}

// List 管理端定制需求列表，最新在前
func (s *CustomOrderService) List(filter repository.CustomOrderListFilter) ([]models.CustomOrderRequest, int64, error) {
	if strings.TrimSpace(filter.Status) != "" {
		status := NormalizeCustomOrderStatus(filter.Status)
		if status == "" {
			return nil, 0, ErrCustomOrderStatusInvalid
		}
		filter.Status = status
	}
	filter.Email = strings.ToLower(strings.TrimSpace(filter.Email))
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
	return s.repo.List(filter)
}

// SetStatus 按流转表变更状态；同状态为空操作，真实变更时通知提交人
func (s *CustomOrderService) SetStatus(id uint, rawStatus, locale string) (*models.CustomOrderRequest, error) {
	status := NormalizeCustomOrderStatus(rawStatus)
	if status == "" {
		return nil, ErrCustomOrderStatusInvalid
	}
	request, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	from := request.Status
	if from == status {
		return request, nil
	}
	if !CanTransitionCustomOrder(from, status) {
		return nil, ErrCustomOrderTransitionInvalid
	}

	affected, err := s.repo.UpdateStatus(id, from, status)
	if err != nil {
		return nil, err
	}
	current, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// 并发变更：以最新状态为准
		if current.Status == status {
			return current, nil
		}
		return nil, ErrCustomOrderTransitionInvalid
	}

	if err := s.queueClient.EnqueueCustomOrderStatusChanged(queue.CustomOrderStatusChangedPayload{
		RequestID:  id,
		FromStatus: from,
		Status:     status,
		Locale:     locale,
	}); err != nil {
		logger.Warnw("custom_order_status_enqueue_failed", "request_id", id, "status", status, "error", err)
	}
	return current, nil
}
