package service

import (
	"context"
	"strings"
	"time"

	"github.com/autoluxe/internal/cache"
	"github.com/autoluxe/internal/config"
	"github.com/autoluxe/internal/constants"
	"github.com/autoluxe/internal/logger"
	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/queue"
	"github.com/autoluxe/internal/repository"

	"gorm.io/gorm"
)

// ShippingInput 收货信息输入
type ShippingInput struct {
	FirstName  string
	LastName   string
	Phone      string
	Address    string
	City       string
	PostalCode string
	Country    string
}

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	catalogRepo repository.CatalogRepository
	cartRepo    repository.CartRepository
	catalog     *CatalogService
	queueClient *queue.Client
	locker      *cache.KeyedLocker
	cfg         config.OrderConfig
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, catalogRepo repository.CatalogRepository, cartRepo repository.CartRepository, catalog *CatalogService, queueClient *queue.Client, locker *cache.KeyedLocker, cfg config.OrderConfig) *OrderService {
	if locker == nil {
		locker = cache.NewKeyedLocker(10*time.Second, 5*time.Second)
	}
	return &OrderService{
		orderRepo:   orderRepo,
		catalogRepo: catalogRepo,
		cartRepo:    cartRepo,
		catalog:     catalog,
		queueClient: queueClient,
		locker:      locker,
		cfg:         cfg,
	}
}

func (in ShippingInput) normalize() (models.ShippingInfo, bool) {
	info := models.ShippingInfo{
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Phone:      strings.TrimSpace(in.Phone),
		Address:    strings.TrimSpace(in.Address),
		City:       strings.TrimSpace(in.City),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Country:    strings.TrimSpace(in.Country),
	}
	complete := info.FirstName != "" && info.LastName != "" && info.Phone != "" && info.Address != "" && info.City != ""
	return info, complete
}

// Confirm 购物车结算为订单（单事务：校验库存、写订单、条件扣减库存、清空购物车）
func (s *OrderService) Confirm(ctx context.Context, userID string, shipping ShippingInput) (*models.Order, error) {
	info, complete := shipping.normalize()
	if !complete {
		return nil, ErrShippingIncomplete
	}

	var order *models.Order
	var touched []cache.CatalogItemRef
	err := withCartLock(ctx, s.locker, userID, func() error {
		cart, err := s.cartRepo.GetByUser(ctx, userID)
		if err != nil {
			return err
		}
		if cart == nil || len(cart.Items) == 0 {
			return ErrCartEmpty
		}

		return s.orderRepo.Transaction(func(tx *gorm.DB) error {
			orderRepo := s.orderRepo.WithTx(tx)
			catalogRepo := s.catalogRepo.WithTx(tx)
			cartRepo := s.cartRepo.WithTx(tx)

			items := make([]models.OrderItem, 0, len(cart.Items))
			total := models.Money{}
			for _, line := range cart.Items {
				kind := lineKind(line)
				item, err := catalogRepo.GetByID(ctx, kind, line.Product.ID)
				if err != nil {
					return err
				}
				if item == nil {
					return &ItemNotFoundError{ItemID: line.Product.ID}
				}
				if item.Stock < line.Quantity {
					return newStockError(item.ID, item.Name, item.Stock)
				}
				items = append(items, models.OrderItem{
					ItemID:   item.ID,
					Kind:     kind,
					Name:     item.Name,
					Price:    item.Price,
					Quantity: line.Quantity,
				})
				total = total.Add(item.Price.Mul(line.Quantity))
			}

			created := &models.Order{
				UserID:        userID,
				Shipping:      info,
				TotalPrice:    total,
				PaymentMethod: constants.PaymentMethodCOD,
				Status:        constants.OrderStatusPending,
			}
			if err := orderRepo.Create(ctx, created, items); err != nil {
				return err
			}

			for _, item := range items {
				affected, err := catalogRepo.DecrementStock(ctx, item.Kind, item.ItemID, item.Quantity)
				if err != nil {
					return err
				}
				if affected == 0 {
					available := 0
					if current, err := catalogRepo.GetByID(ctx, item.Kind, item.ItemID); err == nil && current != nil {
						available = current.Stock
					}
					return newStockError(item.ItemID, item.Name, available)
				}
				touched = append(touched, cache.CatalogItemRef{Kind: item.Kind, ID: item.ItemID})
			}

			if err := cartRepo.ClearByUser(ctx, userID); err != nil {
				return err
			}
			order = created
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, touched)
	s.enqueueStatusEmail(ctx, order.ID, order.Status)
	logger.Infow("order_confirmed",
		"order_id", order.ID,
		"user_id", userID,
		"items", len(order.Items),
		"total", order.TotalPrice.String(),
	)
	return order, nil
}

// ListForUser 用户订单列表（新订单在前）
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// Get 订单详情
func (s *OrderService) Get(ctx context.Context, orderID string) (*models.Order, error) {
	orderID = models.NormalizeObjectID(orderID)
	if !models.IsObjectID(orderID) {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// Cancel 取消待处理订单：回补库存后删除订单
func (s *OrderService) Cancel(ctx context.Context, orderID, userID string) error {
	orderID = models.NormalizeObjectID(orderID)
	if !models.IsObjectID(orderID) {
		return ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return ErrOrderNotCancelable
	}

	var touched []cache.CatalogItemRef
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		catalogRepo := s.catalogRepo.WithTx(tx)
		for _, item := range order.Items {
			kind := item.Kind
			if !kind.Valid() {
				kind = models.KindProduct
			}
			if s.cfg.LegacyCancelRestoreProductOnly && kind != models.KindProduct {
				continue
			}
			affected, err := catalogRepo.IncrementStock(ctx, kind, item.ItemID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				logger.Warnw("order_cancel_restore_item_missing",
					"order_id", order.ID,
					"item_id", item.ItemID,
					"kind", kind,
				)
				continue
			}
			touched = append(touched, cache.CatalogItemRef{Kind: kind, ID: item.ItemID})
		}
		return orderRepo.Delete(ctx, order.ID)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, touched)
	logger.Infow("order_canceled", "order_id", order.ID, "user_id", userID)
	return nil
}

// ListAll 管理端全部订单（附带下单用户）
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	orders, _, err := s.orderRepo.ListAdmin(ctx, repository.OrderListFilter{})
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// SetStatus 管理端更新订单状态（任意状态间可切换）
func (s *OrderService) SetStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	if !isValidOrderStatus(status) {
		return nil, ErrOrderStatusInvalid
	}
	orderID = models.NormalizeObjectID(orderID)
	if !models.IsObjectID(orderID) {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if _, err := s.orderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
		return nil, err
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	s.enqueueStatusEmail(ctx, order.ID, status)
	return order, nil
}

func (s *OrderService) invalidate(ctx context.Context, refs []cache.CatalogItemRef) {
	if len(refs) == 0 {
		return
	}
	if s.catalog != nil {
		s.catalog.InvalidateItems(ctx, refs...)
		return
	}
	_ = cache.DelCatalogItems(ctx, refs...)
}

func (s *OrderService) enqueueStatusEmail(ctx context.Context, orderID, status string) {
	if !s.cfg.StatusEmailEnabled {
		return
	}
	if _, err := enqueueOrderStatusEmailTaskIfEligible(ctx, s.orderRepo, s.queueClient, orderID, status); err != nil {
		logger.Warnw("order_enqueue_status_email_failed",
			"order_id", orderID,
			"status", status,
			"error", err,
		)
	}
}

func isValidOrderStatus(status string) bool {
	for _, candidate := range constants.OrderStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}
