package repository

import (
	"time"

	"github.com/silkloom/storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewSummary 评价统计
type ReviewSummary struct {
	Count     int64
	RatingSum int64
}

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	Upsert(review *models.Review) (*models.Review, bool, error)
	GetByID(id uint) (*models.Review, error)
	IncrementHelpful(id uint) (int64, error)
	ListByProduct(productID uint) ([]models.Review, error)
	SummaryByProduct(productID uint) (ReviewSummary, error)
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Upsert 按 (user_id, product_id) 写入评价，已存在时覆盖评分与内容，保留有用计数与创建时间。
// created 表示本次是否新建了评价行
func (r *GormReviewRepository) Upsert(review *models.Review) (*models.Review, bool, error) {
	if review == nil {
		return nil, false, nil
	}
	now := time.Now()
	row := models.Review{
		UserID:    review.UserID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	var result models.Review
	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Review{}).
			Where("user_id = ? AND product_id = ?", review.UserID, review.ProductID).
			Count(&existing).Error; err != nil {
			return err
		}
		created = existing == 0
		upsert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
		})
		if err := upsert.Omit("User").Create(&row).Error; err != nil {
			return err
		}
		return tx.Preload("User").
			Where("user_id = ? AND product_id = ?", review.UserID, review.ProductID).
			First(&result).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &result, created, nil
}

// GetByID 根据 ID 获取评价，关联作者
func (r *GormReviewRepository) GetByID(id uint) (*models.Review, error) {
	return firstOrNil[models.Review](r.db.Preload("User"), id)
}

// IncrementHelpful 原子递增有用计数，返回受影响行数
func (r *GormReviewRepository) IncrementHelpful(id uint) (int64, error) {
	result := r.db.Model(&models.Review{}).
		Where("id = ?", id).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListByProduct 商品评价列表，最新在前，关联作者
func (r *GormReviewRepository) ListByProduct(productID uint) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	if err := r.db.Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// SummaryByProduct 统计评价数量与评分总和
func (r *GormReviewRepository) SummaryByProduct(productID uint) (ReviewSummary, error) {
	var row struct {
		Count     int64
		RatingSum int64
	}
	if err := r.db.Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(SUM(rating), 0) AS rating_sum").
		Where("product_id = ?", productID).
		Scan(&row).Error; err != nil {
		return ReviewSummary{}, err
	}
	return ReviewSummary{Count: row.Count, RatingSum: row.RatingSum}, nil
}
