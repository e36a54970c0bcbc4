package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/autoluxe/internal/models"
)

// DefaultCatalogItemTTL 商品详情缓存默认时长
const DefaultCatalogItemTTL = 60 * time.Second

// CatalogItemRef 商品定位（种类 + ID）
type CatalogItemRef struct {
	Kind models.CatalogKind
	ID   string
}

func catalogItemKey(kind models.CatalogKind, id string) string {
	return fmt.Sprintf("catalog:%s:%s", kind, id)
}

// GetCatalogItem 读取商品详情缓存
func GetCatalogItem(ctx context.Context, kind models.CatalogKind, id string) (*models.CatalogItem, bool, error) {
	var item models.CatalogItem
	hit, err := GetJSON(ctx, catalogItemKey(kind, id), &item)
	if err != nil || !hit {
		return nil, hit, err
	}
	item.Kind = kind
	return &item, true, nil
}

// SetCatalogItem 写入商品详情缓存
func SetCatalogItem(ctx context.Context, item *models.CatalogItem, ttl time.Duration) error {
	if item == nil || item.ID == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultCatalogItemTTL
	}
	return SetJSON(ctx, catalogItemKey(item.Kind, item.ID), item, ttl)
}

// DelCatalogItems 删除商品详情缓存
func DelCatalogItems(ctx context.Context, refs ...CatalogItemRef) error {
	if len(refs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.ID == "" {
			continue
		}
		keys = append(keys, catalogItemKey(ref.Kind, ref.ID))
	}
	return Del(ctx, keys...)
}
