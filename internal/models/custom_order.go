package models

import "time"

// CustomOrderRequest 定制需求
type CustomOrderRequest struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                        // 主键
	UserID       *uint     `gorm:"index" json:"user_id"`                                        // 提交用户（匿名为空）
	Name         string    `gorm:"type:varchar(120);not null" json:"name"`                      // 联系人
	Email        string    `gorm:"type:varchar(255);not null;index" json:"email"`               // 邮箱
	Phone        string    `gorm:"type:varchar(50)" json:"phone"`                               // 电话
	Requirements string    `gorm:"type:text;not null" json:"requirements"`                      // 需求描述
	Budget       *Money    `gorm:"type:decimal(20,2)" json:"budget"`                            // 预算
	Status       string    `gorm:"type:varchar(20);not null;default:'new';index" json:"status"` // 状态
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                                  // 更新时间
}

// TableName 指定表名
func (CustomOrderRequest) TableName() string {
	return "custom_order_requests"
}
