package service

import (
	"strings"

	"github.com/silkloom/storefront/internal/constants"
	"github.com/silkloom/storefront/internal/logger"
	"github.com/silkloom/storefront/internal/models"
	"github.com/silkloom/storefront/internal/queue"
	"github.com/silkloom/storefront/internal/repository"

	"gorm.io/gorm"
)

const defaultPaymentMethod = "cash_on_delivery"

// OrderService 订单服务（结算占位，不涉及支付）
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		queueClient: queueClient,
	}
}

// CheckoutInput 结算输入
type CheckoutInput struct {
	UserID          uint
	ShippingAddress string
	PaymentMethod   string
	Locale          string
}

// Checkout 在同一事务内按实时价格生成订单并清空购物车
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	paymentMethod := strings.TrimSpace(input.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	var order models.Order
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		items, err := cartRepo.ListByUser(input.UserID)
		if err != nil {
			return err
		}
		summary := SummarizeCart(items)
		if len(summary.Items) == 0 {
			return ErrCartEmpty
		}

		orderItems := make([]models.OrderItem, 0, len(summary.Items))
		for _, item := range summary.Items {
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				Quantity:    item.Quantity,
				Price:       item.Product.Price,
			})
		}
		order = models.Order{
			UserID:          input.UserID,
			Status:          constants.OrderStatusPending,
			TotalAmount:     summary.Subtotal,
			ShippingAddress: strings.TrimSpace(input.ShippingAddress),
			PaymentMethod:   paymentMethod,
		}
		if err := orderRepo.Create(&order, orderItems); err != nil {
			return err
		}
		return cartRepo.ClearByUser(input.UserID)
	})
	if err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueOrderPlaced(queue.OrderPlacedPayload{
		OrderID: order.ID,
		Locale:  input.Locale,
	}); err != nil {
		logger.Warnw("order_placed_enqueue_failed", "order_id", order.ID, "error", err)
	}
	return &order, nil
}

// ListByUser 用户订单列表，最新在前
func (s *OrderService) ListByUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetForUser 获取用户自己的订单
func (s *OrderService) GetForUser(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListAdmin 管理端订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if strings.TrimSpace(filter.Status) != "" {
		status := NormalizeOrderStatus(filter.Status)
		if status == "" {
			return nil, 0, ErrOrderStatusInvalid
		}
		filter.Status = status
	}
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
	return s.orderRepo.ListAdmin(filter)
}

// UpdateStatus 管理端按流转表变更订单状态
func (s *OrderService) UpdateStatus(id uint, rawStatus string) (*models.Order, error) {
	status := NormalizeOrderStatus(rawStatus)
	if status == "" {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == status {
		return order, nil
	}
	if !CanTransitionOrder(order.Status, status) {
		return nil, ErrOrderTransitionInvalid
	}

	affected, err := s.orderRepo.UpdateStatus(id, order.Status, status)
	if err != nil {
		return nil, err
	}
	current, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrOrderNotFound
	}
	if affected == 0 && current.Status != status {
		return nil, ErrOrderTransitionInvalid
	}
	return current, nil
}
