package repository

import (
	"context"
	"errors"

	"github.com/autoluxe/internal/models"

	"gorm.io/gorm"
)

// ContactRepository 联系消息数据访问接口
type ContactRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	GetByID(ctx context.Context, id string) (*models.ContactMessage, error)
	List(ctx context.Context, filter ContactListFilter) ([]models.ContactMessage, int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// GormContactRepository GORM 实现
type GormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository 创建联系消息仓库
func NewContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Create 保存联系消息
func (r *GormContactRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// GetByID 根据 ID 获取联系消息
func (r *GormContactRepository) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	var message models.ContactMessage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// List 联系消息列表（新消息在前）
func (r *GormContactRepository) List(ctx context.Context, filter ContactListFilter) ([]models.ContactMessage, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ContactMessage{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var messages []models.ContactMessage
	if err := query.Order("created_at DESC, id DESC").Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// Delete 删除联系消息，返回受影响行数
func (r *GormContactRepository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ContactMessage{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
