package router

import (
	"net/url"
	"sort"
	"strings"

	"github.com/autoluxe/internal/authz"
	"github.com/autoluxe/internal/cache"
	"github.com/autoluxe/internal/config"
	"github.com/autoluxe/internal/logger"
	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/provider"
	"github.com/autoluxe/internal/storage"

	adminhandlers "github.com/autoluxe/internal/http/handlers/admin"
	publichandlers "github.com/autoluxe/internal/http/handlers/public"

	"github.com/gin-gonic/gin"
)

// catalogMount 商品目录路由前缀与种类
type catalogMount struct {
	Path string
	Kind models.CatalogKind
}

// catalogMounts /fragnance 为历史拼写，保留兼容
var catalogMounts = []catalogMount{
	{Path: "/products", Kind: models.KindProduct},
	{Path: "/gadgets", Kind: models.KindGadget},
	{Path: "/fragrances", Kind: models.KindFragrance},
	{Path: "/fragnance", Kind: models.KindFragrance},
	{Path: "/carcare", Kind: models.KindCarCareService},
}

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisClient := cache.Client()
	loginRule := NewRateLimitRule("rate:login", cfg.Security.LoginRateLimit)
	contactRule := NewRateLimitRule("rate:contact", cfg.Security.ContactRateLimit)

	// 中间件
	r.Use(RecoveryMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 本地存储的图片通过静态路由提供
	if local, ok := c.Media.(*storage.LocalHost); ok && local != nil {
		r.Static(staticMediaPath(local.BaseURL()), local.Dir())
	}

	protect := UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo)
	adminOnly := AdminMiddleware(c.AuthzService)
	var adminRoutes []adminPermissionCatalogItem
	adminRoute := func(group *gin.RouterGroup, method, path string, handler gin.HandlerFunc) {
		group.Handle(method, path, protect, adminOnly, handler)
		adminRoutes = append(adminRoutes, newAdminPermission(method, joinRoutePath(group.BasePath(), path)))
	}

	api := r.Group("/api")
	{
		api.GET("/health", publicHandler.HealthCheck)

		// 商品目录（四个种类共用处理器）
		for _, mount := range catalogMounts {
			group := api.Group(mount.Path)
			group.GET("", publicHandler.ListCatalogItems(mount.Kind))
			if mount.Kind == models.KindProduct {
				// 跨种类查询需先于 /:id 注册
				group.GET("/unified", publicHandler.GetUnifiedProducts)
				group.GET("/productdetails/:id", publicHandler.GetUnifiedProductDetail)
			}
			group.GET("/:id", publicHandler.GetCatalogItem(mount.Kind))
			adminRoute(group, "POST", "", adminHandler.CreateCatalogItem(mount.Kind))
			adminRoute(group, "PUT", "/:id", adminHandler.UpdateCatalogItem(mount.Kind))
			adminRoute(group, "DELETE", "/:id", adminHandler.DeleteCatalogItem(mount.Kind))
		}

		// 购物车
		cart := api.Group("/cart", protect)
		{
			cart.GET("", publicHandler.GetCart)
			cart.POST("", publicHandler.ReplaceCart)
			cart.DELETE("", publicHandler.ClearCart)
			cart.POST("/items", publicHandler.AddCartItem)
			cart.PUT("/items/:itemId", publicHandler.UpdateCartItem)
			cart.DELETE("/items/:itemId", publicHandler.RemoveCartItem)
		}

		// 订单
		orders := api.Group("/orders")
		{
			orders.POST("/confirm", protect, publicHandler.ConfirmOrder)
			orders.GET("", protect, publicHandler.ListOrders)
			adminRoute(orders, "GET", "/all", adminHandler.ListAllOrders)
			orders.GET("/:id", protect, publicHandler.GetOrder)
			orders.DELETE("/:id/cancel", protect, publicHandler.CancelOrder)
			adminRoute(orders, "PUT", "/:id/status", adminHandler.UpdateOrderStatus)
		}

		// 评价
		reviews := api.Group("/reviews")
		{
			reviews.POST("/:itemId", protect, publicHandler.AddReview)
			reviews.GET("/:itemId", publicHandler.ListReviews)
			reviews.DELETE("/:reviewId", protect, publicHandler.DeleteReview)
		}

		// 联系我们
		contact := api.Group("/contact")
		{
			contact.POST("", RateLimitMiddleware(redisClient, contactRule, KeyByIP), publicHandler.SubmitContact)
			adminRoute(contact, "GET", "", adminHandler.ListContactMessages)
			adminRoute(contact, "GET", "/:id", adminHandler.GetContactMessage)
			adminRoute(contact, "DELETE", "/:id", adminHandler.DeleteContactMessage)
		}

		// 用户
		users := api.Group("/users")
		{
			users.POST("/register", publicHandler.UserRegister)
			users.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
			adminRoute(users, "GET", "", adminHandler.ListUsers)
			users.GET("/:id", protect, publicHandler.GetUser)
			users.PUT("/:id", protect, publicHandler.UpdateUser)
			adminRoute(users, "DELETE", "/:id", adminHandler.DeleteUser)
		}

		// 管理端角色与策略
		authzGroup := api.Group("/authz")
		{
			adminRoute(authzGroup, "GET", "/me", adminHandler.GetAuthzMe)
			adminRoute(authzGroup, "GET", "/roles", adminHandler.ListAuthzRoles)
			adminRoute(authzGroup, "POST", "/roles", adminHandler.CreateAuthzRole)
			adminRoute(authzGroup, "DELETE", "/roles/:role", adminHandler.DeleteAuthzRole)
			adminRoute(authzGroup, "GET", "/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
			adminRoute(authzGroup, "POST", "/policies", adminHandler.GrantAuthzPolicy)
			adminRoute(authzGroup, "DELETE", "/policies", adminHandler.RevokeAuthzPolicy)
			adminRoute(authzGroup, "GET", "/users/:id/roles", adminHandler.GetAuthzUserRoles)
			adminRoute(authzGroup, "PUT", "/users/:id/roles", adminHandler.SetAuthzUserRoles)
		}

		// 验证码
		captcha := api.Group("/captcha")
		{
			captcha.GET("/setting", publicHandler.GetCaptchaSetting)
			captcha.GET("/image", publicHandler.GetImageCaptcha)
		}
	}

	warnUncoveredAdminRoutes(c.AuthzService, adminRoutes)
	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func newAdminPermission(method, path string) adminPermissionCatalogItem {
	method = strings.ToUpper(strings.TrimSpace(method))
	object := authz.NormalizeObject(path)
	return adminPermissionCatalogItem{
		Module:     deriveAdminPermissionModule(object),
		Method:     method,
		Object:     object,
		Permission: method + ":" + object,
	}
}

// buildAdminPermissionCatalog 管理端路由权限目录（去重、排序）
func buildAdminPermissionCatalog(routes []adminPermissionCatalogItem) []adminPermissionCatalogItem {
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))
	for _, item := range routes {
		if _, exists := seen[item.Permission]; exists {
			continue
		}
		seen[item.Permission] = struct{}{}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

// warnUncoveredAdminRoutes 管理员角色未覆盖的管理端路由会被 casbin 拒绝，启动时提示
func warnUncoveredAdminRoutes(authzService *authz.Service, routes []adminPermissionCatalogItem) []adminPermissionCatalogItem {
	if authzService == nil {
		return nil
	}
	var uncovered []adminPermissionCatalogItem
	for _, item := range buildAdminPermissionCatalog(routes) {
		allowed, err := authzService.Enforce(authz.RoleAdmin, item.Object, item.Method)
		if err != nil || !allowed {
			uncovered = append(uncovered, item)
			logger.Warnw("admin_route_policy_missing",
				"permission", item.Permission,
				"module", item.Module,
				"error", err,
			)
		}
	}
	return uncovered
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	return segments[0]
}

func joinRoutePath(base, path string) string {
	base = strings.TrimRight(base, "/")
	if path == "" {
		return base
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

// staticMediaPath 本地图片访问前缀（base_url 可为绝对地址）
func staticMediaPath(baseURL string) string {
	path := strings.TrimSpace(baseURL)
	if parsed, err := url.Parse(path); err == nil && parsed.Host != "" {
		path = parsed.Path
	}
	path = "/" + strings.Trim(path, "/")
	if path == "/" {
		return "/uploads"
	}
	return path
}
