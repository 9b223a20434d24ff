package service

import "errors"

// 通用
var (
	ErrNotFound = errors.New("资源不存在")
)

// 商品与分类
var (
	ErrProductNotFound     = errors.New("商品不存在")
	ErrProductInvalid      = errors.New("商品名称与 slug 为必填项")
	ErrProductPriceInvalid = errors.New("商品价格无效")
	ErrSlugExists          = errors.New("slug 已存在")
	ErrCategoryNotFound    = errors.New("分类不存在")
	ErrCategoryInUse       = errors.New("分类下仍有商品")
	ErrCategoryInvalid     = errors.New("分类名称与 slug 为必填项")
)

// 购物车
var (
	ErrCartQuantityInvalid = errors.New("购物车数量无效")
	ErrCartItemNotFound    = errors.New("购物车项不存在")
	ErrCartItemForbidden   = errors.New("购物车项不属于当前用户")
	ErrCartEmpty           = errors.New("购物车为空")
)

// 评价
var (
	ErrReviewNotFound       = errors.New("评价不存在")
	ErrReviewRatingInvalid  = errors.New("评分无效")
	ErrReviewCommentInvalid = errors.New("评价内容过短")
)

// 定制需求
var (
	ErrCustomOrderInvalid           = errors.New("定制需求缺少必填项")
	ErrInvalidEmail                 = errors.New("邮箱格式错误")
	ErrCustomOrderBudgetInvalid     = errors.New("定制需求预算无效")
	ErrCustomOrderNotFound          = errors.New("定制需求不存在")
	ErrCustomOrderStatusInvalid     = errors.New("定制需求状态无效")
	ErrCustomOrderTransitionInvalid = errors.New("定制需求状态变更不允许")
)

// 订单
var (
	ErrOrderNotFound          = errors.New("订单不存在")
	ErrOrderStatusInvalid     = errors.New("订单状态无效")
	ErrOrderTransitionInvalid = errors.New("订单状态变更不允许")
)

// 账号与会话
var (
	ErrUsernameExists     = errors.New("用户名已存在")
	ErrUsernameInvalid    = errors.New("用户名格式错误")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrWeakPassword       = errors.New("密码强度不足")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrTokenInvalid       = errors.New("会话无效")
	ErrTokenRevoked       = errors.New("会话已失效")
	ErrJWTSecretMissing   = errors.New("未配置会话密钥")
	ErrRoleInvalid        = errors.New("角色无效")
)

// 验证码
var (
	ErrCaptchaRequired      = errors.New("缺少验证码")
	ErrCaptchaInvalid       = errors.New("验证码错误")
	ErrCaptchaConfigInvalid = errors.New("验证码配置无效")
	ErrCaptchaVerifyFailed  = errors.New("验证码校验失败")
)

// 邮件
var (
	ErrEmailServiceDisabled      = errors.New("邮件服务未启用")
	ErrEmailServiceNotConfigured = errors.New("邮件服务未配置")
	ErrEmailRecipientRejected    = errors.New("收件人被拒绝")
)
