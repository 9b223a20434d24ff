package repository

import (
	"time"

	"github.com/silkloom/storefront/internal/models"

	"gorm.io/gorm"
)

// CustomOrderRepository 定制需求数据访问接口
type CustomOrderRepository interface {
	Create(request *models.CustomOrderRequest) error
	GetByID(id uint) (*models.CustomOrderRequest, error)
	List(filter CustomOrderListFilter) ([]models.CustomOrderRequest, int64, error)
	UpdateStatus(id uint, fromStatus, toStatus string) (int64, error)
}

// GormCustomOrderRepository GORM 实现
type GormCustomOrderRepository struct {
	db *gorm.DB
}

// NewCustomOrderRepository 创建定制需求仓库
func NewCustomOrderRepository(db *gorm.DB) *GormCustomOrderRepository {
	return &GormCustomOrderRepository{db: db}
}

// Create 创建定制需求
func (r *GormCustomOrderRepository) Create(request *models.CustomOrderRequest) error {
	return r.db.Create(request).Error
}

// GetByID 根据 ID 获取定制需求
func (r *GormCustomOrderRepository) GetByID(id uint) (*models.CustomOrderRequest, error) {
	return firstOrNil[models.CustomOrderRequest](r.db, id)
}

// List 管理端列表，最新在前
func (r *GormCustomOrderRepository) List(filter CustomOrderListFilter) ([]models.CustomOrderRequest, int64, error) {
	query := r.db.Model(&models.CustomOrderRequest{})
	query = whereIf(query, filter.Status != "", "status = ?", filter.Status)
	query = whereIf(query, filter.Email != "", "email = ?", filter.Email)
	return findPage[models.CustomOrderRequest](query, filter.Page, filter.PageSize, "id DESC")
}

// UpdateStatus 条件更新状态，仅当当前状态等于 fromStatus 时生效
func (r *GormCustomOrderRepository) UpdateStatus(id uint, fromStatus, toStatus string) (int64, error) {
	result := r.db.Model(&models.CustomOrderRequest{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(map[string]interface{}{
			"status":     toStatus,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
