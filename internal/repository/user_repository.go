package repository

import (
	"strings"
	"time"

	"github.com/silkloom/storefront/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByUsername(username string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Create(user *models.User) error
	UpdateLastLogin(id uint, at time.Time) error
	BumpTokenVersion(id uint, at time.Time) error
	ListAdminIDs() ([]uint, error)
	List(filter UserListFilter) ([]models.User, int64, error)
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByUsername 根据用户名获取用户
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	return firstOrNil[models.User](r.db.Where("username = ?", username))
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	return firstOrNil[models.User](r.db, id)
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// UpdateLastLogin 记录最后登录时间
func (r *GormUserRepository) UpdateLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).UpdateColumn("last_login_at", at).Error
}

// BumpTokenVersion 使该用户此前签发的会话全部失效
func (r *GormUserRepository) BumpTokenVersion(id uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"token_version":        gorm.Expr("token_version + 1"),
		"token_invalid_before": at,
		"updated_at":           at,
	}).Error
}

// ListAdminIDs 列出全部管理员 ID
func (r *GormUserRepository) ListAdminIDs() ([]uint, error) {
	ids := make([]uint, 0)
	if err := r.db.Model(&models.User{}).Where("is_admin = ?", true).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

var userSearchColumns = []string{"username", "name", "email"}

// List 管理端分页查询用户
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		condition, argCount := buildLikeCondition(r.db, userSearchColumns)
		query = query.Where(condition, repeatLikeArgs(containsPattern(keyword), argCount)...)
	}
	if filter.IsAdmin != nil {
		query = query.Where("is_admin = ?", *filter.IsAdmin)
	}
	query = whereIf(query, filter.CreatedFrom != nil, "created_at >= ?", filter.CreatedFrom)
	query = whereIf(query, filter.CreatedTo != nil, "created_at <= ?", filter.CreatedTo)
	return findPage[models.User](query, filter.Page, filter.PageSize, "id DESC")
}
