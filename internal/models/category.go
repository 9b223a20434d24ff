package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 分类表
type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`                   // 主键
	Name        string         `gorm:"type:varchar(120);not null" json:"name"` // 名称
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`       // 唯一标识
	Description string         `gorm:"type:text" json:"description"`           // 描述
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                // 创建时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
