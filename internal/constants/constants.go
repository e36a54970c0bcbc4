package constants

// 订单状态常量
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
)

// OrderStatuses 全部合法订单状态
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// PaymentMethodCOD 唯一支持的支付方式
const PaymentMethodCOD = "Cash on Delivery"

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 商品类目别名（请求中的 category 字段）
const (
	CategoryProduct        = "Product"
	CategoryInterior       = "Interior"
	CategoryExterior       = "Exterior"
	CategoryTest           = "Test"
	CategoryGadget         = "Gadget"
	CategoryGadgets        = "Gadgets"
	CategoryFragrance      = "Fragrance"
	CategoryCarCare        = "CarCare"
	CategoryCarCareService = "CarCareService"
)

// CatalogPageSize 商品列表固定分页大小
const CatalogPageSize = 10

// 媒体存储驱动
const (
	MediaDriverLocal = "local"
	MediaDriverGCS   = "gcs"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码场景常量
const (
	CaptchaSceneContact  = "contact"
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)

// 队列名称
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型
const (
	TaskCatalogAssetRelease = "catalog:asset_release"
	TaskOrderStatusEmail    = "order:status_email"
)
