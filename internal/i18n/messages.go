package i18n

var messages = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":            "Invalid request",
		"error.internal":               "Internal Server Error",
		"error.unauthorized":           "Not authorized, no token",
		"error.token_invalid":          "Not authorized, token failed",
		"error.forbidden":              "Not authorized",
		"error.admin_required":         "Not authorized as an admin",
		"error.too_many_requests":      "Too many requests, please try again later",
		"error.not_found":              "Resource not found",
		"error.upload_too_large":       "File is too large",
		"error.upload_type":            "Unsupported file type",
		"error.auth_header_invalid":    "Not authorized, malformed authorization header",
		"error.jwt_secret_missing":     "Authentication is not configured",
		"error.token_revoked":          "Not authorized, token revoked",
		"error.password_weak":          "Password is too weak",
		"error.rate_limited":           "Too many attempts, please try again in %d seconds",
		"error.rate_limit_unavailable": "Rate limiter unavailable, please try again later",

		"error.password_min_length":     "Password must be at least %d characters",
		"error.password_max_length":     "Password must not exceed %d bytes",
		"error.password_require_letter": "Password must contain a letter",
		"error.password_require_number": "Password must contain a number",

		"catalog.invalid_id":             "Invalid product ID",
		"catalog.not_found":              "Product not found",
		"catalog.image_required":         "Image is required",
		"catalog.name_required":          "Name is required",
		"catalog.name_taken":             "An item with this name already exists",
		"catalog.price_invalid":          "Price must not be negative",
		"catalog.stock_invalid":          "Stock must not be negative",
		"catalog.media_unavailable":      "Image storage is not configured",
		"catalog.invalid_category":       "Invalid category",
		"catalog.removed.Product":        "Product removed",
		"catalog.removed.Gadget":         "Gadget removed",
		"catalog.removed.Fragrance":      "Fragrance removed",
		"catalog.removed.CarCareService": "Car care service removed",

		"cart.items_required":            "Items array is required",
		"cart.line_invalid":              "Each item must have productId, positive quantity, and category",
		"cart.add_invalid":               "productId, category and positive quantity are required",
		"cart.invalid_category":          "Invalid category: %s",
		"cart.product_not_found":         "Product not found: %s",
		"cart.insufficient_stock":        "Insufficient stock for product %s",
		"cart.updated":                   "Cart updated successfully",
		"cart.out_of_stock":              "This product is out of stock",
		"cart.add_out_of_stock":          "Out of stock",
		"cart.add_more_limit":            "You can only add %d more of this item",
		"cart.add_no_more":               "No additional items available",
		"cart.item_added":                "Item added to cart",
		"cart.quantity_required":         "Positive quantity is required",
		"cart.item_not_in_cart":          "Item not in cart",
		"cart.product_unavailable":       "Product no longer available",
		"cart.only_available":            "Only %d items available",
		"cart.item_updated":              "Cart item updated",
		"cart.item_not_found":            "Item not found in your cart",
		"cart.item_not_found_suggestion": "Please refresh your cart and try again",
		"cart.item_removed":              "Item removed from cart successfully",
		"cart.cleared":                   "Cart cleared successfully",
		"cart.busy":                      "Your cart is being updated, please try again",
		"error.cart_not_found":           "Cart not found",

		"order.shipping_incomplete": "Incomplete shipping information",
		"order.cart_empty":          "Your cart is empty",
		"order.insufficient_stock":  "Insufficient stock for %s",
		"order.product_not_found":   "Product not found",
		"order.placed":              "Order placed successfully",
		"order.not_found":           "Order not found",
		"order.not_cancelable":      "Only pending orders can be canceled",
		"order.canceled":            "Order canceled successfully",
		"order.status_invalid":      "Invalid status value",
		"order.status_updated":      "Order status updated to %s",
		"order.status.pending":      "Pending",
		"order.status.processing":   "Processing",
		"order.status.shipped":      "Shipped",
		"order.status.delivered":    "Delivered",

		"email.order_status.subject":        "Order status updated: %s",
		"email.order_status.default_name":   "Customer",
		"email.order_status.body_placed":    "Hi %s,\n\nYour order %s has been placed.\nTotal: %s\nPayment method: Cash on Delivery",
		"email.order_status.body_delivered": "Hi %s,\n\nYour order %s has been delivered.\nTotal: %s\nThank you for shopping with us.",
		"email.order_status.body":           "Hi %s,\n\nYour order %s is now %s.\nTotal: %s",

		"review.rating_invalid": "Please enter a rating between 1 & 5",
		"review.not_eligible":   "You can only review products from delivered orders",
		"review.added":          "Review added successfully",
		"review.not_found":      "Review not found",
		"review.deleted":        "Review deleted successfully",

		"contact.fields_required":  "All fields are required",
		"contact.email_invalid":    "Please provide a valid email address",
		"contact.sent":             "Contact Message send successfully",
		"contact.invalid_id":       "Invalid ID format - must be a 24 character hex string",
		"contact.not_found":        "No message found with the provided ID",
		"contact.delete_not_found": "Message not Found",
		"contact.deleted":          "Message Deleted Succesfully",

		"user.name_required":       "Name is required",
		"user.email_invalid":       "Please provide a valid email address",
		"user.email_exists":        "User already exists",
		"user.invalid_credentials": "Invalid email or password",
		"user.disabled":            "Account is disabled",
		"user.not_found":           "User not found",
		"user.deleted":             "User removed",
		"user.nothing_to_update":   "Nothing to update",
		"user.cannot_delete_self":  "You cannot delete your own account",

		"authz.role_deleted":   "Role deleted",
		"authz.policy_granted": "Policy granted",
		"authz.policy_revoked": "Policy revoked",
		"authz.builtin_role":   "Builtin roles cannot be changed",
		"authz.user_not_admin": "Roles can only be assigned to admin accounts",

		"captcha.required": "Captcha is required",
		"captcha.invalid":  "Captcha is invalid or expired",
		"captcha.disabled": "Captcha is not enabled",
	},
	LocaleZH: {
		"error.bad_request":            "请求参数错误",
		"error.internal":               "服务器内部错误",
		"error.unauthorized":           "未登录或缺少令牌",
		"error.token_invalid":          "令牌无效或已过期",
		"error.forbidden":              "无权操作",
		"error.admin_required":         "需要管理员权限",
		"error.too_many_requests":      "请求过于频繁，请稍后再试",
		"error.not_found":              "资源不存在",
		"error.upload_too_large":       "文件过大",
		"error.upload_type":            "不支持的文件类型",
		"error.auth_header_invalid":    "认证头格式错误",
		"error.jwt_secret_missing":     "认证服务未配置",
		"error.token_revoked":          "令牌已失效，请重新登录",
		"error.password_weak":          "密码强度不足",
		"error.rate_limited":           "尝试次数过多，请 %d 秒后重试",
		"error.rate_limit_unavailable": "限流服务不可用，请稍后重试",

		"error.password_min_length":     "密码长度至少为 %d 位",
		"error.password_max_length":     "密码长度不能超过 %d 字节",
		"error.password_require_letter": "密码需包含字母",
		"error.password_require_number": "密码需包含数字",

		"catalog.invalid_id":             "商品 ID 无效",
		"catalog.not_found":              "商品不存在",
		"catalog.image_required":         "请上传商品图片",
		"catalog.name_required":          "商品名称不能为空",
		"catalog.name_taken":             "同名商品已存在",
		"catalog.price_invalid":          "价格不能为负数",
		"catalog.stock_invalid":          "库存不能为负数",
		"catalog.media_unavailable":      "图片存储未配置",
		"catalog.invalid_category":       "无效的分类",
		"catalog.removed.Product":        "商品已删除",
		"catalog.removed.Gadget":         "配件已删除",
		"catalog.removed.Fragrance":      "香氛已删除",
		"catalog.removed.CarCareService": "养护服务已删除",

		"cart.items_required":            "items 必须为数组",
		"cart.line_invalid":              "每一项都需要 productId、正数数量与 category",
		"cart.add_invalid":               "productId、category 与正数数量均为必填",
		"cart.invalid_category":          "无效的分类：%s",
		"cart.product_not_found":         "商品不存在：%s",
		"cart.insufficient_stock":        "商品 %s 库存不足",
		"cart.updated":                   "购物车已更新",
		"cart.out_of_stock":              "该商品已售罄",
		"cart.add_out_of_stock":          "库存不足",
		"cart.add_more_limit":            "该商品最多还能加入 %d 件",
		"cart.add_no_more":               "该商品无法再加入更多",
		"cart.item_added":                "已加入购物车",
		"cart.quantity_required":         "数量必须为正数",
		"cart.item_not_in_cart":          "购物车中没有该商品",
		"cart.product_unavailable":       "商品已下架",
		"cart.only_available":            "仅剩 %d 件可购买",
		"cart.item_updated":              "购物车商品已更新",
		"cart.item_not_found":            "购物车中未找到该商品",
		"cart.item_not_found_suggestion": "请刷新购物车后重试",
		"cart.item_removed":              "已从购物车移除",
		"cart.cleared":                   "购物车已清空",
		"cart.busy":                      "购物车正在更新，请稍后重试",
		"error.cart_not_found":           "购物车不存在",

		"order.shipping_incomplete": "收货信息不完整",
		"order.cart_empty":          "购物车为空",
		"order.insufficient_stock":  "%s 库存不足",
		"order.product_not_found":   "商品不存在",
		"order.placed":              "下单成功",
		"order.not_found":           "订单不存在",
		"order.not_cancelable":      "仅待处理订单可以取消",
		"order.canceled":            "订单已取消",
		"order.status_invalid":      "无效的订单状态",
		"order.status_updated":      "订单状态已更新为 %s",
		"order.status.pending":      "待处理",
		"order.status.processing":   "处理中",
		"order.status.shipped":      "已发货",
		"order.status.delivered":    "已送达",

		"email.order_status.subject":        "订单状态更新：%s",
		"email.order_status.default_name":   "顾客",
		"email.order_status.body_placed":    "%s 您好：\n\n您的订单 %s 已提交。\n金额：%s\n支付方式：货到付款",
		"email.order_status.body_delivered": "%s 您好：\n\n您的订单 %s 已送达。\n金额：%s\n感谢您的惠顾。",
		"email.order_status.body":           "%s 您好：\n\n您的订单 %s 当前状态为 %s。\n金额：%s",

		"review.rating_invalid": "评分需在 1 到 5 之间",
		"review.not_eligible":   "仅可评价已送达订单中的商品",
		"review.added":          "评价成功",
		"review.not_found":      "评价不存在",
		"review.deleted":        "评价已删除",

		"contact.fields_required":  "所有字段均为必填",
		"contact.email_invalid":    "请输入有效的邮箱地址",
		"contact.sent":             "留言已提交",
		"contact.invalid_id":       "ID 格式无效，应为 24 位十六进制字符串",
		"contact.not_found":        "未找到该留言",
		"contact.delete_not_found": "留言不存在",
		"contact.deleted":          "留言已删除",

		"user.name_required":       "姓名不能为空",
		"user.email_invalid":       "请输入有效的邮箱地址",
		"user.email_exists":        "该邮箱已注册",
		"user.invalid_credentials": "邮箱或密码错误",
		"user.disabled":            "账号已被禁用",
		"user.not_found":           "用户不存在",
		"user.deleted":             "用户已删除",
		"user.nothing_to_update":   "没有需要更新的内容",
		"user.cannot_delete_self":  "不能删除自己的账号",

		"authz.role_deleted":   "角色已删除",
		"authz.policy_granted": "策略已授予",
		"authz.policy_revoked": "策略已撤销",
		"authz.builtin_role":   "预置角色不可修改",
		"authz.user_not_admin": "只能为管理员账号分配角色",

		"captcha.required": "请完成验证码",
		"captcha.invalid":  "验证码错误或已过期",
		"captcha.disabled": "验证码未启用",
	},
}
