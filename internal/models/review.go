package models

import "time"

// Review 商品评价，(user_id, product_id) 唯一
type Review struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                                 // 主键
	UserID       uint      `gorm:"not null;uniqueIndex:idx_review_user_product" json:"user_id"`          // 用户ID
	ProductID    uint      `gorm:"not null;uniqueIndex:idx_review_user_product;index" json:"product_id"` // 商品ID
	Rating       int       `gorm:"not null" json:"rating"`                                               // 评分 1-5
	Comment      string    `gorm:"type:text;not null" json:"comment"`                                    // 评价内容
	HelpfulCount int       `gorm:"not null;default:0" json:"helpful_count"`                              // 有用计数
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                                              // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                                           // 更新时间

	UserName string `gorm:"-" json:"user_name,omitempty"` // 展示名称（非持久化）

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
