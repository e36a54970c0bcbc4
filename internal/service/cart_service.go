package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/autoluxe/internal/cache"
	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/repository"
)

// CartLineInput 购物车整体替换的单行输入
type CartLineInput struct {
	ItemID   string
	Quantity int
	Category string
}

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	UserID   string
	ItemID   string
	Category string
	Quantity int
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	catalogRepo repository.CatalogRepository
	locker      *cache.KeyedLocker
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, catalogRepo repository.CatalogRepository, locker *cache.KeyedLocker) *CartService {
	if locker == nil {
		locker = cache.NewKeyedLocker(10*time.Second, 5*time.Second)
	}
	return &CartService{
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		locker:      locker,
	}
}

// cartLockKey 购物车锁（结算共用）
func cartLockKey(userID string) string {
	return "cart:" + userID
}

// withCartLock 在用户购物车锁内执行
func withCartLock(ctx context.Context, locker *cache.KeyedLocker, userID string, fn func() error) error {
	err := locker.WithLock(ctx, cartLockKey(userID), fn)
	if errors.Is(err, cache.ErrLockTimeout) {
		return ErrCartBusy
	}
	return err
}

// Replace 整体替换购物车，任一行校验失败则不落库
func (s *CartService) Replace(ctx context.Context, userID string, lines []CartLineInput) (*models.Cart, error) {
	if lines == nil {
		return nil, ErrCartItemsRequired
	}
	for _, line := range lines {
		if strings.TrimSpace(line.ItemID) == "" || line.Quantity <= 0 || strings.TrimSpace(line.Category) == "" {
			return nil, ErrCartLineInvalid
		}
	}

	var cart *models.Cart
	err := withCartLock(ctx, s.locker, userID, func() error {
		resolved := make(models.CartLines, 0, len(lines))
		for _, line := range lines {
			category := strings.TrimSpace(line.Category)
			kind, ok := models.ParseCartCategory(category)
			if !ok {
				return &CategoryError{Category: category}
			}
			item, err := s.resolveItem(ctx, kind, line.ItemID)
			if err != nil {
				return err
			}
			quantity := line.Quantity
			existing := -1
			for i := range resolved {
				if resolved[i].Product.ID == item.ID && resolved[i].Product.Kind == kind {
					existing = i
					break
				}
			}
			if existing >= 0 {
				quantity += resolved[existing].Quantity
			}
			if item.Stock < quantity {
				return newStockError(item.ID, item.Name, item.Stock)
			}
			if existing >= 0 {
				resolved[existing].Quantity = quantity
				continue
			}
			resolved = append(resolved, models.CartLine{
				Product:  snapshotCartProduct(item, category),
				Quantity: quantity,
			})
		}

		current, err := s.cartRepo.GetByUser(ctx, userID)
		if err != nil {
			return err
		}
		if current == nil {
			current = &models.Cart{UserID: userID}
		}
		current.Items = resolved
		if err := s.cartRepo.Save(ctx, current); err != nil {
			return err
		}
		cart = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem 加入购物车（同商品同种类合并数量）
func (s *CartService) AddItem(ctx context.Context, input AddCartItemInput) (*models.Cart, error) {
	category := strings.TrimSpace(input.Category)
	if strings.TrimSpace(input.ItemID) == "" || input.Quantity <= 0 || category == "" {
		return nil, ErrCartLineInvalid
	}
	kind, ok := models.ParseCartCategory(category)
	if !ok {
		return nil, &CategoryError{Category: category}
	}

	var cart *models.Cart
	err := withCartLock(ctx, s.locker, input.UserID, func() error {
		item, err := s.resolveItem(ctx, kind, input.ItemID)
		if err != nil {
			return err
		}
		if item.Stock <= 0 {
			return ErrOutOfStock
		}
		if item.Stock < input.Quantity {
			return newStockError(item.ID, item.Name, item.Stock)
		}

		current, err := s.cartRepo.GetByUser(ctx, input.UserID)
		if err != nil {
			return err
		}
		if current == nil {
			current = &models.Cart{UserID: input.UserID, Items: models.CartLines{}}
		}

		index := current.FindLine(item.ID, kind)
		held := 0
		if index >= 0 {
			held = current.Items[index].Quantity
		}
		if item.Stock < held+input.Quantity {
			return newStockError(item.ID, item.Name, item.Stock).withMaxAvailable(item.Stock - held)
		}

		if index >= 0 {
			current.Items[index].Quantity = held + input.Quantity
		} else {
			current.Items = append(current.Items, models.CartLine{
				Product:  snapshotCartProduct(item, category),
				Quantity: input.Quantity,
			})
		}
		if err := s.cartRepo.Save(ctx, current); err != nil {
			return err
		}
		cart = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateLine 覆盖购物车行数量（按行内记录的种类校验库存）
func (s *CartService) UpdateLine(ctx context.Context, userID, itemID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	itemID = models.NormalizeObjectID(itemID)

	var cart *models.Cart
	err := withCartLock(ctx, s.locker, userID, func() error {
		current, err := s.cartRepo.GetByUser(ctx, userID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrCartNotFound
		}
		index := current.FindLineByItem(itemID)
		if index < 0 {
			return ErrCartItemNotFound
		}
		line := current.Items[index]
		item, err := s.catalogRepo.GetByID(ctx, lineKind(line), itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrCatalogItemNotFound
		}
		if item.Stock < quantity {
			return newStockError(item.ID, item.Name, item.Stock).withMaxAvailable(item.Stock)
		}
		current.Items[index].Quantity = quantity
		if err := s.cartRepo.Save(ctx, current); err != nil {
			return err
		}
		cart = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveLine 移除购物车中该商品的全部行
func (s *CartService) RemoveLine(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	itemID = models.NormalizeObjectID(itemID)
	if !models.IsObjectID(itemID) {
		return nil, ErrInvalidID
	}

	var cart *models.Cart
	err := withCartLock(ctx, s.locker, userID, func() error {
		current, err := s.cartRepo.GetByUser(ctx, userID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrCartNotFound
		}
		kept := make(models.CartLines, 0, len(current.Items))
		for _, line := range current.Items {
			if line.Product.ID == itemID {
				continue
			}
			kept = append(kept, line)
		}
		if len(kept) == len(current.Items) {
			return ErrCartItemNotFound
		}
		current.Items = kept
		if err := s.cartRepo.Save(ctx, current); err != nil {
			return err
		}
		cart = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear 清空购物车（保留记录）
func (s *CartService) Clear(ctx context.Context, userID string) (*models.Cart, error) {
	var cart *models.Cart
	err := withCartLock(ctx, s.locker, userID, func() error {
		current, err := s.cartRepo.GetByUser(ctx, userID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrCartNotFound
		}
		current.Items = models.CartLines{}
		if err := s.cartRepo.Save(ctx, current); err != nil {
			return err
		}
		cart = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// Fetch 获取购物车，为每行附加商品首图
func (s *CartService) Fetch(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	for i := range cart.Items {
		line := &cart.Items[i]
		line.Product.Image = nil
		item, err := s.catalogRepo.GetByID(ctx, lineKind(*line), line.Product.ID)
		if err != nil {
			return nil, err
		}
		if item != nil && len(item.Images) > 0 {
			image := item.Images.First()
			line.Product.Image = &image
		}
	}
	return cart, nil
}

// resolveItem 查找商品，不存在返回 ItemNotFoundError
func (s *CartService) resolveItem(ctx context.Context, kind models.CatalogKind, itemID string) (*models.CatalogItem, error) {
	id := models.NormalizeObjectID(itemID)
	if !models.IsObjectID(id) {
		return nil, &ItemNotFoundError{ItemID: itemID}
	}
	item, err := s.catalogRepo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &ItemNotFoundError{ItemID: itemID}
	}
	return item, nil
}

// lineKind 购物车行对应的种类，旧数据缺少种类时按类目别名推断
func lineKind(line models.CartLine) models.CatalogKind {
	if line.Product.Kind.Valid() {
		return line.Product.Kind
	}
	if kind, ok := models.ParseCartCategory(line.Product.Category); ok {
		return kind
	}
	return models.KindProduct
}

func snapshotCartProduct(item *models.CatalogItem, category string) models.CartProduct {
	return models.CartProduct{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Stock:    item.Stock,
		Category: category,
		Kind:     item.Kind,
	}
}
