package service

import (
	"context"
	"strings"

	"github.com/autoluxe/internal/constants"
	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/repository"

	"golang.org/x/sync/errgroup"
)

// UnifiedCatalogService 跨种类商品查询
type UnifiedCatalogService struct {
	repo repository.CatalogRepository
}

// NewUnifiedCatalogService 创建跨种类查询服务
func NewUnifiedCatalogService(repo repository.CatalogRepository) *UnifiedCatalogService {
	return &UnifiedCatalogService{repo: repo}
}

// List 对每个种类执行相同的分页查询后按种类顺序拼接。
// 每个种类各取一页，结果页没有全局统一排序。
func (s *UnifiedCatalogService) List(ctx context.Context, keyword, category string, page int) (*CatalogPage, error) {
	if page < 1 {
		page = 1
	}
	filter := repository.CatalogListFilter{
		Page:     page,
		PageSize: constants.CatalogPageSize,
		Keyword:  keyword,
		Category: strings.TrimSpace(category),
	}

	kinds := models.CatalogKinds
	pages := make([][]models.CatalogItem, len(kinds))
	counts := make([]int64, len(kinds))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		group.Go(func() error {
			items, total, err := s.repo.List(groupCtx, kind, filter)
			if err != nil {
				return err
			}
			pages[i] = items
			counts[i] = total
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	merged := make([]models.CatalogItem, 0, len(kinds)*constants.CatalogPageSize)
	var total int64
	for i := range kinds {
		merged = append(merged, pages[i]...)
		total += counts[i]
	}
	return &CatalogPage{
		Items: merged,
		Page:  page,
		Pages: countPages(total, constants.CatalogPageSize),
		Total: total,
	}, nil
}

// Get 按 category 选择种类，ID 与名称需同时精确匹配
func (s *UnifiedCatalogService) Get(ctx context.Context, id, name, category string) (*models.CatalogItem, error) {
	id = models.NormalizeObjectID(id)
	if !models.IsObjectID(id) {
		return nil, ErrInvalidID
	}
	kind, ok := models.ParseDetailCategory(category)
	if !ok {
		return nil, ErrInvalidCategory
	}
	item, err := s.repo.GetByIDAndName(ctx, kind, id, name)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCatalogItemNotFound
	}
	return item, nil
}
