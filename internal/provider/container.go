package provider

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/autoluxe/internal/authz"
	"github.com/autoluxe/internal/cache"
	"github.com/autoluxe/internal/config"
	"github.com/autoluxe/internal/logger"
	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/queue"
	"github.com/autoluxe/internal/repository"
	"github.com/autoluxe/internal/service"
	"github.com/autoluxe/internal/storage"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Media       storage.MediaHost
	CartLocker  *cache.KeyedLocker

	// Repositories
	UserRepo    repository.UserRepository
	CatalogRepo repository.CatalogRepository
	CartRepo    repository.CartRepository
	OrderRepo   repository.OrderRepository
	ReviewRepo  repository.ReviewRepository
	ContactRepo repository.ContactRepository

	// Services
	AuthzService          *authz.Service
	UserAuthService       *service.UserAuthService
	UserService           *service.UserService
	EmailService          *service.EmailService
	CaptchaService        *service.CaptchaService
	CatalogService        *service.CatalogService
	UnifiedCatalogService *service.UnifiedCatalogService
	CartService           *service.CartService
	OrderService          *service.OrderService
	ReviewService         *service.ReviewService
	ContactService        *service.ContactService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端（未启用时为禁用客户端，投递直接跳过）
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	media, err := storage.New(context.Background(), cfg.Media)
	if err != nil {
		logger.Errorw("provider_init_media_failed", "driver", cfg.Media.Driver, "error", err)
		media = nil
	}

	lockTTL := time.Duration(cfg.Order.CartLockTTLSeconds) * time.Second
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Media:       media,
		CartLocker:  cache.NewKeyedLocker(lockTTL, lockTTL),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CatalogRepo = repository.NewCatalogRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.ContactRepo = repository.NewContactRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.AuthzService)
	c.UserService = service.NewUserService(c.UserRepo, c.AuthzService, c.Config.Security.PasswordPolicy)
	c.CatalogService = service.NewCatalogService(c.CatalogRepo, c.Media, c.QueueClient, c.Config.Catalog)
	c.UnifiedCatalogService = service.NewUnifiedCatalogService(c.CatalogRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.CatalogRepo, c.CartLocker)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CatalogRepo, c.CartRepo, c.CatalogService, c.QueueClient, c.CartLocker, c.Config.Order)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.OrderRepo, c.Config.Review)
	c.ContactService = service.NewContactService(c.ContactRepo)

	if err := c.UserService.SyncAdminRoles(context.Background()); err != nil {
		logger.Warnw("provider_sync_admin_roles_failed", "error", err)
	}
}

// Close 释放队列、缓存与图片存储连接
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.QueueClient != nil {
		errs = append(errs, c.QueueClient.Close())
	}
	if closer, ok := c.Media.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	errs = append(errs, cache.Close())
	return errors.Join(errs...)
}
