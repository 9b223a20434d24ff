package service

import (
	"github.com/silkloom/storefront/internal/models"
	"github.com/silkloom/storefront/internal/repository"
)

// CartSummary 购物车汇总，按实时价格计算，不落库
type CartSummary struct {
	Items      []models.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	Subtotal   models.Money      `json:"subtotal"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// List 获取用户购物车，商品已删除的行被忽略
func (s *CartService) List(userID uint) ([]models.CartItem, error) {
	return s.cartRepo.ListByUser(userID)
}

// Summary 获取购物车及其汇总
func (s *CartService) Summary(userID uint) (*CartSummary, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	summary := SummarizeCart(items)
	return &summary, nil
}

// AddItem 加入购物车，已存在时原子累加数量
func (s *CartService) AddItem(userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrCartQuantityInvalid
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	item, err := s.cartRepo.AddQuantity(userID, productID, quantity)
	if err != nil {
		return nil, err
	}
	item.Product = product
	return item, nil
}

// SetQuantity 覆盖购物车项数量
func (s *CartService) SetQuantity(userID, itemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrCartQuantityInvalid
	}
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.SetQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByID(item.ID)
}

// Remove 删除购物车项
func (s *CartService) Remove(userID, itemID uint) error {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return err
	}
	return s.cartRepo.Delete(item.ID)
}

// Clear 清空用户购物车
func (s *CartService) Clear(userID uint) error {
	return s.cartRepo.ClearByUser(userID)
}

func (s *CartService) ownedItem(userID, itemID uint) (*models.CartItem, error) {
	item, err := s.cartRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if item.UserID != userID {
		return nil, ErrCartItemForbidden
	}
	return item, nil
}

// SummarizeCart 计算商品总件数与小计，未关联商品的行不计入
func SummarizeCart(items []models.CartItem) CartSummary {
	summary := CartSummary{Items: make([]models.CartItem, 0, len(items))}
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		summary.Items = append(summary.Items, item)
		summary.TotalItems += item.Quantity
		summary.Subtotal = summary.Subtotal.Add(item.Product.Price.MulInt(item.Quantity))
	}
	return summary
}
