package queue

import (
	"encoding/json"

	"github.com/autoluxe/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEmail 订单状态邮件通知任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskCatalogAssetRelease 商品图片释放任务
	TaskCatalogAssetRelease = constants.TaskCatalogAssetRelease
)

// OrderStatusEmailPayload 订单状态邮件任务载荷
type OrderStatusEmailPayload struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// CatalogAssetReleasePayload 商品图片释放任务载荷
type CatalogAssetReleasePayload struct {
	Kind string   `json:"kind"`
	URLs []string `json:"urls"`
}

// NewOrderStatusEmailTask 创建订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewCatalogAssetReleaseTask 创建商品图片释放任务
func NewCatalogAssetReleaseTask(payload CatalogAssetReleasePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogAssetRelease, body), nil
}
