package repository

import (
	"github.com/silkloom/storefront/internal/models"

	"gorm.io/gorm"
)

// UserLoginLogRepository 登录记录数据访问接口
type UserLoginLogRepository interface {
	Create(log *models.UserLoginLog) error
	ListAdmin(filter UserLoginLogListFilter) ([]models.UserLoginLog, int64, error)
}

// GormUserLoginLogRepository GORM 实现
type GormUserLoginLogRepository struct {
	db *gorm.DB
}

// NewUserLoginLogRepository 创建登录记录仓库
func NewUserLoginLogRepository(db *gorm.DB) *GormUserLoginLogRepository {
	return &GormUserLoginLogRepository{db: db}
}

// Create 写入一条登录记录
func (r *GormUserLoginLogRepository) Create(log *models.UserLoginLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

// ListAdmin 按用户、状态、IP 与时间范围分页查询，最新在前
func (r *GormUserLoginLogRepository) ListAdmin(filter UserLoginLogListFilter) ([]models.UserLoginLog, int64, error) {
	query := r.db.Model(&models.UserLoginLog{})
	query = whereIf(query, filter.UserID != 0, "user_id = ?", filter.UserID)
	query = whereIf(query, filter.Username != "", "username = ?", filter.Username)
	query = whereIf(query, filter.Status != "", "status = ?", filter.Status)
	query = whereIf(query, filter.ClientIP != "", "client_ip = ?", filter.ClientIP)
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return findPage[models.UserLoginLog](query, filter.Page, filter.PageSize, "id DESC")
}
