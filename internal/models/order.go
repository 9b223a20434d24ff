package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表（结算占位，不涉及支付）
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                      // 主键
	UserID          uint           `gorm:"index;not null" json:"user_id"`                             // 用户ID
	Status          string         `gorm:"index;not null;default:'pending'" json:"status"`            // 订单状态
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 合计金额
	ShippingAddress string         `gorm:"type:text" json:"shipping_address"`                         // 收货地址
	PaymentMethod   string         `gorm:"type:varchar(50)" json:"payment_method"`                    // 支付方式
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
