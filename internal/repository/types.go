package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductListFilter 查询商品列表的过滤条件，字段为空表示不限制
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   *uint
	Featured     *bool
	InStock      *bool
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Search       string
	Fabric       string
	WorkDetails  string
	WithCategory bool
}

// CustomOrderListFilter 查询定制需求列表的过滤条件
type CustomOrderListFilter struct {
	Page     int
	PageSize int
	Status   string
	Email    string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserLoginLogListFilter 查询登录日志列表的过滤条件
type UserLoginLogListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Username    string
	Status      string
	ClientIP    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// AuthzAuditLogListFilter 查询权限审计日志的过滤条件
type AuthzAuditLogListFilter struct {
	Page           int
	PageSize       int
	OperatorUserID uint
	TargetUserID   uint
	Action         string
}

// UserListFilter 管理端用户列表过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	IsAdmin     *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
