package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/autoluxe/internal/models"

	"gorm.io/gorm"
)

// CatalogRepository 商品目录数据访问接口（按种类分表）
type CatalogRepository interface {
	List(ctx context.Context, kind models.CatalogKind, filter CatalogListFilter) ([]models.CatalogItem, int64, error)
	GetByID(ctx context.Context, kind models.CatalogKind, id string) (*models.CatalogItem, error)
	GetByIDAndName(ctx context.Context, kind models.CatalogKind, id, name string) (*models.CatalogItem, error)
	Create(ctx context.Context, item *models.CatalogItem) error
	UpdateFields(ctx context.Context, kind models.CatalogKind, id string, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, kind models.CatalogKind, id string) (int64, error)
	CountByName(ctx context.Context, kind models.CatalogKind, name string, excludeID *string) (int64, error)
	DecrementStock(ctx context.Context, kind models.CatalogKind, id string, quantity int) (int64, error)
	IncrementStock(ctx context.Context, kind models.CatalogKind, id string, quantity int) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CatalogRepository
}

// GormCatalogRepository GORM 实现
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 创建商品目录仓库
func NewCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCatalogRepository) WithTx(tx *gorm.DB) CatalogRepository {
	if tx == nil {
		return r
	}
	return &GormCatalogRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCatalogRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func (r *GormCatalogRepository) table(ctx context.Context, kind models.CatalogKind) *gorm.DB {
	return r.db.WithContext(ctx).Table(kind.Table())
}

// List 商品列表（名称模糊匹配，不区分大小写）
func (r *GormCatalogRepository) List(ctx context.Context, kind models.CatalogKind, filter CatalogListFilter) ([]models.CatalogItem, int64, error) {
	if !kind.Valid() {
		return nil, 0, fmt.Errorf("unknown catalog kind %q", kind)
	}
	query := r.table(ctx, kind)
	query = whereContains(query, filter.Keyword, "name")
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var items []models.CatalogItem
	if err := query.Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].Kind = kind
	}
	return items, total, nil
}

// GetByID 根据 ID 获取商品
func (r *GormCatalogRepository) GetByID(ctx context.Context, kind models.CatalogKind, id string) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := r.table(ctx, kind).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	item.Kind = kind
	return &item, nil
}

// GetByIDAndName 根据 ID 与名称精确获取商品
func (r *GormCatalogRepository) GetByIDAndName(ctx context.Context, kind models.CatalogKind, id, name string) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := r.table(ctx, kind).Where("id = ? AND name = ?", id, name).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	item.Kind = kind
	return &item, nil
}

// Create 创建商品
func (r *GormCatalogRepository) Create(ctx context.Context, item *models.CatalogItem) error {
	if item == nil || !item.Kind.Valid() {
		return errors.New("invalid catalog item")
	}
	return r.table(ctx, item.Kind).Create(item).Error
}

// UpdateFields 仅写回给定列，未列出的列（如库存）保持数据库当前值
func (r *GormCatalogRepository) UpdateFields(ctx context.Context, kind models.CatalogKind, id string, fields map[string]interface{}) (int64, error) {
	if !kind.Valid() || id == "" {
		return 0, errors.New("invalid catalog item")
	}
	if len(fields) == 0 {
		return 0, nil
	}
	fields["updated_at"] = time.Now()
	result := r.table(ctx, kind).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete 删除商品，返回受影响行数
func (r *GormCatalogRepository) Delete(ctx context.Context, kind models.CatalogKind, id string) (int64, error) {
	result := r.table(ctx, kind).Where("id = ?", id).Delete(&models.CatalogItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountByName 统计同名商品数量
func (r *GormCatalogRepository) CountByName(ctx context.Context, kind models.CatalogKind, name string, excludeID *string) (int64, error) {
	var count int64
	query := r.table(ctx, kind).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DecrementStock 条件扣减库存（库存不足时不更新，返回 0）
func (r *GormCatalogRepository) DecrementStock(ctx context.Context, kind models.CatalogKind, id string, quantity int) (int64, error) {
	if id == "" || quantity <= 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.table(ctx, kind).
		Where("id = ? AND stock >= ?", id, quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncrementStock 回补库存
func (r *GormCatalogRepository) IncrementStock(ctx context.Context, kind models.CatalogKind, id string, quantity int) (int64, error) {
	if id == "" || quantity <= 0 {
		return 0, errors.New("invalid stock increment params")
	}
	result := r.table(ctx, kind).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock + ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
