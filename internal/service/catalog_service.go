package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/autoluxe/internal/cache"
	"github.com/autoluxe/internal/config"
	"github.com/autoluxe/internal/constants"
	"github.com/autoluxe/internal/logger"
	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/queue"
	"github.com/autoluxe/internal/repository"
	"github.com/autoluxe/internal/storage"

	"golang.org/x/sync/singleflight"
)

// CatalogPage 商品分页结果
type CatalogPage struct {
	Items []models.CatalogItem
	Page  int
	Pages int
	Total int64
}

// CreateCatalogItemInput 创建商品输入
type CreateCatalogItemInput struct {
	Name        string
	Description string
	Price       models.Money
	Category    string
	Stock       int
}

// UpdateCatalogItemInput 更新商品输入（nil 表示保持原值）
type UpdateCatalogItemInput struct {
	Name        *string
	Description *string
	Price       *models.Money
	Category    *string
	Stock       *int
}

// CatalogService 商品目录服务（四个种类共用）
type CatalogService struct {
	repo     repository.CatalogRepository
	media    storage.MediaHost
	queue    *queue.Client
	cacheTTL time.Duration
	group    singleflight.Group
}

// NewCatalogService 创建商品目录服务
func NewCatalogService(repo repository.CatalogRepository, media storage.MediaHost, queueClient *queue.Client, cfg config.CatalogConfig) *CatalogService {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = cache.DefaultCatalogItemTTL
	}
	return &CatalogService{
		repo:     repo,
		media:    media,
		queue:    queueClient,
		cacheTTL: ttl,
	}
}

// List 商品列表（名称关键字 + 固定页大小）
func (s *CatalogService) List(ctx context.Context, kind models.CatalogKind, keyword string, page int) (*CatalogPage, error) {
	if !kind.Valid() {
		return nil, ErrInvalidCategory
	}
	if page < 1 {
		page = 1
	}
	items, total, err := s.repo.List(ctx, kind, repository.CatalogListFilter{
		Page:     page,
		PageSize: constants.CatalogPageSize,
		Keyword:  keyword,
	})
	if err != nil {
		return nil, err
	}
	return &CatalogPage{
		Items: items,
		Page:  page,
		Pages: countPages(total, constants.CatalogPageSize),
		Total: total,
	}, nil
}

// Get 商品详情（读穿缓存，同 key 并发合并）
func (s *CatalogService) Get(ctx context.Context, kind models.CatalogKind, id string) (*models.CatalogItem, error) {
	if !kind.Valid() {
		return nil, ErrInvalidCategory
	}
	id = models.NormalizeObjectID(id)
	if !models.IsObjectID(id) {
		return nil, ErrInvalidID
	}
	if item, hit, err := cache.GetCatalogItem(ctx, kind, id); err == nil && hit {
		return item, nil
	} else if err != nil {
		logger.Warnw("catalog_cache_get_failed", "kind", kind, "id", id, "error", err)
	}

	value, err, _ := s.group.Do(string(kind)+":"+id, func() (interface{}, error) {
		item, err := s.repo.GetByID(ctx, kind, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, ErrCatalogItemNotFound
		}
		if err := cache.SetCatalogItem(ctx, item, s.cacheTTL); err != nil {
			logger.Warnw("catalog_cache_set_failed", "kind", kind, "id", id, "error", err)
		}
		return item, nil
	})
	if err != nil {
		return nil, err
	}
	item := *value.(*models.CatalogItem)
	return &item, nil
}

// Create 创建商品，图片必填
func (s *CatalogService) Create(ctx context.Context, kind models.CatalogKind, input CreateCatalogItemInput, image *storage.Object) (*models.CatalogItem, error) {
	if !kind.Valid() {
		return nil, ErrInvalidCategory
	}
	if image == nil {
		return nil, ErrImageRequired
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if input.Price.IsNegative() {
		return nil, ErrPriceInvalid
	}
	if input.Stock < 0 {
		return nil, ErrStockInvalid
	}
	if err := s.ensureNameAvailable(ctx, kind, name, nil); err != nil {
		return nil, err
	}

	url, err := s.upload(ctx, kind, image)
	if err != nil {
		return nil, err
	}
	item := &models.CatalogItem{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Category:    strings.TrimSpace(input.Category),
		Stock:       input.Stock,
		Images:      models.StringArray{url},
		Kind:        kind,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		s.releaseAssets(ctx, kind, []string{url})
		return nil, err
	}
	return item, nil
}

// Update 部分更新商品，可选替换首图
func (s *CatalogService) Update(ctx context.Context, kind models.CatalogKind, id string, input UpdateCatalogItemInput, image *storage.Object) (*models.CatalogItem, error) {
	if !kind.Valid() {
		return nil, ErrInvalidCategory
	}
	id = models.NormalizeObjectID(id)
	if !models.IsObjectID(id) {
		return nil, ErrInvalidID
	}
	item, err := s.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCatalogItemNotFound
	}

	fields := make(map[string]interface{})
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		if name != item.Name {
			if err := s.ensureNameAvailable(ctx, kind, name, &item.ID); err != nil {
				return nil, err
			}
		}
		fields["name"] = name
	}
	if input.Description != nil {
		fields["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, ErrPriceInvalid
		}
		fields["price"] = *input.Price
	}
	if input.Category != nil {
		fields["category"] = strings.TrimSpace(*input.Category)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, ErrStockInvalid
		}
		fields["stock"] = *input.Stock
	}

	var uploaded, replaced string
	if image != nil {
		url, err := s.upload(ctx, kind, image)
		if err != nil {
			return nil, err
		}
		uploaded = url
		images := append(models.StringArray{}, item.Images...)
		if len(images) > 0 {
			replaced = images[0]
			images[0] = url
		} else {
			images = models.StringArray{url}
		}
		fields["images"] = images
	}

	affected, err := s.repo.UpdateFields(ctx, kind, item.ID, fields)
	if err == nil && affected == 0 && len(fields) > 0 {
		err = ErrCatalogItemNotFound
	}
	if err != nil {
		if uploaded != "" {
			s.releaseAssets(ctx, kind, []string{uploaded})
		}
		return nil, err
	}
	s.InvalidateItems(ctx, cache.CatalogItemRef{Kind: kind, ID: item.ID})
	if replaced != "" {
		s.releaseAssets(ctx, kind, []string{replaced})
	}

	// 返回数据库当前值
	fresh, err := s.repo.GetByID(ctx, kind, item.ID)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, ErrCatalogItemNotFound
	}
	return fresh, nil
}

// Delete 删除商品记录后释放图片
func (s *CatalogService) Delete(ctx context.Context, kind models.CatalogKind, id string) error {
	if !kind.Valid() {
		return ErrInvalidCategory
	}
	id = models.NormalizeObjectID(id)
	if !models.IsObjectID(id) {
		return ErrInvalidID
	}
	item, err := s.repo.GetByID(ctx, kind, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCatalogItemNotFound
	}
	affected, err := s.repo.Delete(ctx, kind, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCatalogItemNotFound
	}
	s.InvalidateItems(ctx, cache.CatalogItemRef{Kind: kind, ID: id})
	s.releaseAssets(ctx, kind, item.Images)
	return nil
}

// InvalidateItems 清除商品详情缓存（库存变化后调用）
func (s *CatalogService) InvalidateItems(ctx context.Context, refs ...cache.CatalogItemRef) {
	if err := cache.DelCatalogItems(ctx, refs...); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "count", len(refs), "error", err)
	}
}

// ReleaseAssets 同步释放图片（队列消费者调用），返回首个错误
func (s *CatalogService) ReleaseAssets(ctx context.Context, kind models.CatalogKind, urls []string) error {
	if s.media == nil {
		return ErrMediaNotConfigured
	}
	var firstErr error
	for _, url := range urls {
		if strings.TrimSpace(url) == "" {
			continue
		}
		if err := s.media.Release(ctx, url); err != nil {
			logger.Warnw("catalog_asset_release_failed", "kind", kind, "url", url, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// releaseAssets 异步释放图片，队列不可用时就地尽力释放
func (s *CatalogService) releaseAssets(ctx context.Context, kind models.CatalogKind, urls []string) {
	if len(urls) == 0 {
		return
	}
	if s.queue != nil && s.queue.Enabled() {
		err := s.queue.EnqueueCatalogAssetRelease(queue.CatalogAssetReleasePayload{
			Kind: string(kind),
			URLs: urls,
		})
		if err == nil {
			return
		}
		logger.Warnw("catalog_enqueue_asset_release_failed", "kind", kind, "count", len(urls), "error", err)
	}
	_ = s.ReleaseAssets(ctx, kind, urls)
}

func (s *CatalogService) upload(ctx context.Context, kind models.CatalogKind, image *storage.Object) (string, error) {
	if s.media == nil || !s.media.Configured() {
		return "", ErrMediaNotConfigured
	}
	obj := *image
	obj.Folder = kind.Folder()
	url, err := s.media.Upload(ctx, obj)
	if err != nil {
		return "", fmt.Errorf("upload %s image: %w", kind, err)
	}
	return url, nil
}

func (s *CatalogService) ensureNameAvailable(ctx context.Context, kind models.CatalogKind, name string, excludeID *string) error {
	if !kind.UniqueName() {
		return nil
	}
	count, err := s.repo.CountByName(ctx, kind, name, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrNameTaken
	}
	return nil
}

// countPages 计算总页数（向上取整）
func countPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
