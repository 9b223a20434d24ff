package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`                    // 名称
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                          // 唯一标识
	Description string         `gorm:"type:text" json:"description"`                              // 描述
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`        // 实时价格
	CategoryID  *uint          `gorm:"index" json:"category_id"`                                  // 分类ID
	ImageURLs   StringArray    `gorm:"column:image_urls;type:json" json:"image_urls"`             // 图片地址（有序）
	Features    StringArray    `gorm:"type:json" json:"features"`                                 // 卖点
	Fabric      string         `gorm:"type:varchar(120);index" json:"fabric"`                     // 面料
	WorkDetails string         `gorm:"column:work_details;type:varchar(255)" json:"work_details"` // 工艺
	InStock     bool           `gorm:"not null;index" json:"in_stock"`                            // 是否有货
	Featured    bool           `gorm:"not null;index" json:"featured"`                            // 是否推荐
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
