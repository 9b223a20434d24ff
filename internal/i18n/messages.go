package i18n

var messages = map[string]map[string]string{
	LocaleEN: {
		"success":                               "success",
		"error.bad_request":                     "Invalid request",
		"error.validation_failed":               "Request validation failed",
		"error.internal":                        "Internal server error",
		"error.unauthorized":                    "Please sign in first",
		"error.forbidden":                       "You do not have permission to perform this action",
		"error.admin_required":                  "Administrator access required",
		"error.session_missing":                 "Session not found",
		"error.token_invalid":                   "Session is invalid or expired",
		"error.token_revoked":                   "Session has been signed out",
		"error.jwt_secret_missing":              "Session secret is not configured",
		"error.rate_limited":                    "Too many requests, please retry in %d seconds",
		"error.login_too_many":                  "Too many sign-in attempts, please retry in %d seconds",
		"error.rate_limit_unavailable":          "Rate limiter unavailable",
		"error.id_invalid":                      "Invalid id",
		"error.product_not_found":               "Product not found",
		"error.product_fetch_failed":            "Failed to load products",
		"error.product_save_failed":             "Failed to save product",
		"error.product_delete_failed":           "Failed to delete product",
		"error.product_price_invalid":           "Price must be greater than zero",
		"error.product_export_failed":           "Failed to export products",
		"error.product_filter_invalid":          "Invalid product filter",
		"error.product_invalid":                 "Product name and slug are required",
		"error.slug_exists":                     "Slug already in use",
		"error.category_not_found":              "Category not found",
		"error.category_fetch_failed":           "Failed to load categories",
		"error.category_save_failed":            "Failed to save category",
		"error.category_delete_failed":          "Failed to delete category",
		"error.category_in_use":                 "Category still has products",
		"error.category_invalid":                "Category name and slug are required",
		"error.cart_fetch_failed":               "Failed to load cart",
		"error.cart_update_failed":              "Failed to update cart",
		"error.cart_item_not_found":             "Cart item not found",
		"error.cart_item_forbidden":             "This cart item belongs to another user",
		"error.cart_quantity_invalid":           "Quantity must be a positive integer",
		"error.cart_empty":                      "Your cart is empty",
		"error.review_not_found":                "Review not found",
		"error.review_fetch_failed":             "Failed to load reviews",
		"error.review_submit_failed":            "Failed to submit review",
		"error.review_rating_invalid":           "Rating must be between 1 and 5",
		"error.review_comment_invalid":          "Comment must be at least 3 characters",
		"error.custom_order_invalid":            "Name, email and requirements are required",
		"error.email_invalid":                   "Invalid email address",
		"error.custom_order_budget_invalid":     "Budget must be greater than zero",
		"error.custom_order_not_found":          "Custom order request not found",
		"error.custom_order_status_invalid":     "Unknown custom order status",
		"error.custom_order_transition_invalid": "Custom order status change not allowed",
		"error.custom_order_submit_failed":      "Failed to submit custom order request",
		"error.custom_order_fetch_failed":       "Failed to load custom order requests",
		"error.custom_order_update_failed":      "Failed to update custom order request",
		"error.order_not_found":                 "Order not found",
		"error.order_fetch_failed":              "Failed to load orders",
		"error.order_create_failed":             "Failed to place order",
		"error.order_status_invalid":            "Unknown order status",
		"error.order_transition_invalid":        "Order status change not allowed",
		"error.order_update_failed":             "Failed to update order",
		"error.username_exists":                 "Username already taken",
		"error.username_invalid":                "Username must be 3-32 letters, digits, dots, dashes or underscores",
		"error.invalid_credentials":             "Incorrect username or password",
		"error.register_failed":                 "Registration failed",
		"error.login_failed":                    "Sign-in failed",
		"error.user_not_found":                  "User not found",
		"error.user_fetch_failed":               "Failed to load user",
		"error.password_min_length":             "Password must be at least %d characters",
		"error.password_require_upper":          "Password must contain an uppercase letter",
		"error.password_require_lower":          "Password must contain a lowercase letter",
		"error.password_require_number":         "Password must contain a digit",
		"error.password_require_special":        "Password must contain a special character",
		"error.captcha_required":                "Please complete the captcha",
		"error.captcha_invalid":                 "Captcha is incorrect",
		"error.captcha_generate_failed":         "Failed to generate captcha",
		"error.captcha_verify_failed":           "Captcha verification failed",
		"error.role_invalid":                    "Unknown role",
		"error.authz_fetch_failed":              "Failed to load permissions",
		"error.authz_update_failed":             "Failed to update permissions",
		"error.login_log_fetch_failed":          "Failed to load sign-in logs",
		"mail.custom_order_submitted.subject":   "New custom order request #%d",
		"mail.custom_order_submitted.body":      "Name: %s\nEmail: %s\nPhone: %s\nBudget: %s\n\n%s",
		"mail.custom_order_status.subject":      "Your custom order request #%d is now %s",
		"mail.custom_order_status.body":         "Hello %s,\n\nThe status of your custom order request #%d changed to \"%s\".\n\nThank you for shopping with us.",
		"mail.order_placed.subject":             "Order #%d received",
		"mail.order_placed.body":                "Hello %s,\n\nWe received your order #%d.\n\n%s\nTotal: %s\n\nWe will contact you about delivery.",
	},
	LocaleZH: {
		"success":                               "成功",
		"error.bad_request":                     "请求参数错误",
		"error.validation_failed":               "请求参数校验失败",
		"error.internal":                        "服务器内部错误",
		"error.unauthorized":                    "请先登录",
		"error.forbidden":                       "无权执行该操作",
		"error.admin_required":                  "需要管理员权限",
		"error.session_missing":                 "会话不存在",
		"error.token_invalid":                   "会话无效或已过期",
		"error.token_revoked":                   "会话已退出",
		"error.jwt_secret_missing":              "未配置会话密钥",
		"error.rate_limited":                    "请求过于频繁，请 %d 秒后重试",
		"error.login_too_many":                  "登录尝试过多，请 %d 秒后重试",
		"error.rate_limit_unavailable":          "限流服务不可用",
		"error.id_invalid":                      "ID 无效",
		"error.product_not_found":               "商品不存在",
		"error.product_fetch_failed":            "获取商品失败",
		"error.product_save_failed":             "保存商品失败",
		"error.product_delete_failed":           "删除商品失败",
		"error.product_price_invalid":           "价格必须大于 0",
		"error.product_export_failed":           "导出商品失败",
		"error.product_filter_invalid":          "商品筛选参数错误",
		"error.product_invalid":                 "商品名称与 slug 为必填项",
		"error.slug_exists":                     "Slug 已被使用",
		"error.category_not_found":              "分类不存在",
		"error.category_fetch_failed":           "获取分类失败",
		"error.category_save_failed":            "保存分类失败",
		"error.category_delete_failed":          "删除分类失败",
		"error.category_in_use":                 "分类下仍有商品",
		"error.category_invalid":                "分类名称与 slug 为必填项",
		"error.cart_fetch_failed":               "获取购物车失败",
		"error.cart_update_failed":              "更新购物车失败",
		"error.cart_item_not_found":             "购物车项不存在",
		"error.cart_item_forbidden":             "无权操作该购物车项",
		"error.cart_quantity_invalid":           "数量必须为正整数",
		"error.cart_empty":                      "购物车为空",
		"error.review_not_found":                "评价不存在",
		"error.review_fetch_failed":             "获取评价失败",
		"error.review_submit_failed":            "提交评价失败",
		"error.review_rating_invalid":           "评分必须在 1 到 5 之间",
		"error.review_comment_invalid":          "评价内容至少 3 个字符",
		"error.custom_order_invalid":            "姓名、邮箱与需求为必填项",
		"error.email_invalid":                   "邮箱格式错误",
		"error.custom_order_budget_invalid":     "预算必须大于 0",
		"error.custom_order_not_found":          "定制需求不存在",
		"error.custom_order_status_invalid":     "未知的定制需求状态",
		"error.custom_order_transition_invalid": "不允许的定制需求状态变更",
		"error.custom_order_submit_failed":      "提交定制需求失败",
		"error.custom_order_fetch_failed":       "获取定制需求失败",
		"error.custom_order_update_failed":      "更新定制需求失败",
		"error.order_not_found":                 "订单不存在",
		"error.order_fetch_failed":              "获取订单失败",
		"error.order_create_failed":             "下单失败",
		"error.order_status_invalid":            "未知的订单状态",
		"error.order_transition_invalid":        "不允许的订单状态变更",
		"error.order_update_failed":             "更新订单失败",
		"error.username_exists":                 "用户名已被占用",
		"error.username_invalid":                "用户名需为 3-32 位字母、数字、点、横线或下划线",
		"error.invalid_credentials":             "用户名或密码错误",
		"error.register_failed":                 "注册失败",
		"error.login_failed":                    "登录失败",
		"error.user_not_found":                  "用户不存在",
		"error.user_fetch_failed":               "获取用户失败",
		"error.password_min_length":             "密码长度至少 %d 位",
		"error.password_require_upper":          "密码需包含大写字母",
		"error.password_require_lower":          "密码需包含小写字母",
		"error.password_require_number":         "密码需包含数字",
		"error.password_require_special":        "密码需包含特殊字符",
		"error.captcha_required":                "请完成验证码",
		"error.captcha_invalid":                 "验证码错误",
		"error.captcha_generate_failed":         "生成验证码失败",
		"error.captcha_verify_failed":           "验证码校验失败",
		"error.role_invalid":                    "未知角色",
		"error.authz_fetch_failed":              "获取权限失败",
		"error.authz_update_failed":             "更新权限失败",
		"error.login_log_fetch_failed":          "获取登录日志失败",
		"mail.custom_order_submitted.subject":   "新的定制需求 #%d",
		"mail.custom_order_submitted.body":      "姓名：%s\n邮箱：%s\n电话：%s\n预算：%s\n\n%s",
		"mail.custom_order_status.subject":      "您的定制需求 #%d 状态已更新为 %s",
		"mail.custom_order_status.body":         "%s 您好：\n\n您的定制需求 #%d 状态已变更为「%s」。\n\n感谢您的支持。",
		"mail.order_placed.subject":             "订单 #%d 已收到",
		"mail.order_placed.body":                "%s 您好：\n\n我们已收到您的订单 #%d。\n\n%s\n合计：%s\n\n我们会尽快与您联系发货事宜。",
	},
}
