package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/autoluxe/internal/logger"
	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/provider"
	"github.com/autoluxe/internal/queue"
	"github.com/autoluxe/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskCatalogAssetRelease, c.handleCatalogAssetRelease)
}

func (c *Consumer) handleOrderStatusEmail(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.OrderID) == "" {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(ctx, payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	user, err := c.UserRepo.GetByID(ctx, order.UserID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
		return err
	}
	receiverEmail, input := buildOrderStatusEmail(order, user, payload.Status)
	if receiverEmail == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_status_email_skip_email_service_nil", "order_id", order.ID)
		return nil
	}
	if err := c.EmailService.SendOrderStatusEmail(receiverEmail, input, ""); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailRecipientRejected) {
			logger.Debugw("worker_order_status_email_skip_undeliverable", "order_id", order.ID, "error", err)
			return nil
		}
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"receiver_email", receiverEmail,
			"status", input.Status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleCatalogAssetRelease(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_catalog_asset_release_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CatalogAssetReleasePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_catalog_asset_release_unmarshal_failed", "error", err)
		return err
	}
	kind := models.CatalogKind(payload.Kind)
	if !kind.Valid() || len(payload.URLs) == 0 {
		logger.Debugw("worker_catalog_asset_release_skip_invalid_payload", "kind", payload.Kind, "count", len(payload.URLs))
		return nil
	}
	if c.CatalogService == nil {
		logger.Warnw("worker_catalog_asset_release_skip_catalog_service_nil", "kind", kind)
		return nil
	}
	if err := c.CatalogService.ReleaseAssets(ctx, kind, payload.URLs); err != nil {
		if errors.Is(err, service.ErrMediaNotConfigured) {
			logger.Warnw("worker_catalog_asset_release_skip_media_unconfigured", "kind", kind)
			return nil
		}
		return err
	}
	return nil
}

// buildOrderStatusEmail 组装收件人与邮件内容，收件人为空表示跳过
func buildOrderStatusEmail(order *models.Order, user *models.User, status string) (string, service.OrderStatusEmailInput) {
	if order == nil {
		return "", service.OrderStatusEmailInput{}
	}
	status = strings.TrimSpace(status)
	if status == "" {
		status = order.Status
	}
	input := service.OrderStatusEmailInput{
		OrderID:      order.ID,
		Status:       status,
		Total:        order.TotalPrice,
		CustomerName: strings.TrimSpace(order.Shipping.FirstName),
	}
	if user == nil {
		return "", input
	}
	if input.CustomerName == "" {
		input.CustomerName = strings.TrimSpace(user.Name)
	}
	return strings.TrimSpace(user.Email), input
}
