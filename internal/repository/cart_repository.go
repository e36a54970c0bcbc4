package repository

import (
	"context"
	"errors"

	"github.com/autoluxe/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUser(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	ClearByUser(ctx context.Context, userID string) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByUser 获取用户购物车，不存在返回 nil
func (r *GormCartRepository) GetByUser(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = models.CartLines{}
	}
	return &cart, nil
}

// Save 保存购物车（首次保存时创建）
func (r *GormCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	if cart == nil {
		return nil
	}
	if cart.Items == nil {
		cart.Items = models.CartLines{}
	}
	if cart.ID == "" {
		return r.db.WithContext(ctx).Create(cart).Error
	}
	return r.db.WithContext(ctx).Save(cart).Error
}

// ClearByUser 清空购物车行（保留购物车记录）
func (r *GormCartRepository) ClearByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&models.Cart{}).
		Where("user_id = ?", userID).
		Update("items", models.CartLines{}).Error
}
