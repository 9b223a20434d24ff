package repository

import (
	"github.com/silkloom/storefront/internal/models"

	"gorm.io/gorm"
)

// AuthzAuditLogRepository 角色变更审计数据访问接口
type AuthzAuditLogRepository interface {
	Create(log *models.AuthzAuditLog) error
	ListAdmin(filter AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error)
}

// GormAuthzAuditLogRepository GORM 实现
type GormAuthzAuditLogRepository struct {
	db *gorm.DB
}

// NewAuthzAuditLogRepository 创建审计仓库
func NewAuthzAuditLogRepository(db *gorm.DB) *GormAuthzAuditLogRepository {
	return &GormAuthzAuditLogRepository{db: db}
}

// Create 写入审计记录
func (r *GormAuthzAuditLogRepository) Create(log *models.AuthzAuditLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

// ListAdmin 按操作人、目标用户与动作分页查询
func (r *GormAuthzAuditLogRepository) ListAdmin(filter AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error) {
	query := r.db.Model(&models.AuthzAuditLog{})
	query = whereIf(query, filter.OperatorUserID != 0, "operator_user_id = ?", filter.OperatorUserID)
	query = whereIf(query, filter.TargetUserID != 0, "target_user_id = ?", filter.TargetUserID)
	query = whereIf(query, filter.Action != "", "action = ?", filter.Action)
	return findPage[models.AuthzAuditLog](query, filter.Page, filter.PageSize, "id DESC")
}
