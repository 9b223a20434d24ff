package constants

// 定制需求状态
const (
	CustomOrderStatusNew        = "new"
	CustomOrderStatusInProgress = "in-progress"
	CustomOrderStatusCompleted  = "completed"
	CustomOrderStatusCancelled  = "cancelled"
)

// 订单状态（结算占位流程，无真实支付）
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 评价
const (
	ReviewRatingMin        = 1
	ReviewRatingMax        = 5
	ReviewCommentMinLength = 3
	ReviewAnonymousName    = "Anonymous"
)

// 异步任务类型
const (
	TaskCustomOrderSubmitted     = "custom_order:submitted"
	TaskCustomOrderStatusChanged = "custom_order:status_changed"
	TaskOrderPlaced              = "order:placed"
)

// 队列名称
const (
	QueueDefault = "default"
	QueueMail    = "mail"
)

// 验证码场景
const (
	CaptchaSceneLogin       = "login"
	CaptchaSceneCustomOrder = "custom_order"
)

// 权限内置角色
const (
	RoleSuperAdmin     = "super_admin"
	RoleCatalogManager = "catalog_manager"
	RoleOrderManager   = "order_manager"
)

// 上下文键
const (
	ContextKeyRequestID = "request_id"
	ContextKeyUserID    = "user_id"
	ContextKeyUsername  = "username"
	ContextKeyIsAdmin   = "is_admin"
)

// 登录日志
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"

	LoginLogFailReasonInvalidCredentials = "invalid_credentials"
	LoginLogFailReasonCaptchaInvalid     = "captcha_invalid"
	LoginLogFailReasonInternalError      = "internal_error"
)

// 权限审计动作
const (
	AuthzAuditActionSetUserRoles = "set_user_roles"
)
