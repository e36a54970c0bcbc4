package service

import (
	"context"
	"strings"

	"github.com/autoluxe/internal/queue"
	"github.com/autoluxe/internal/repository"
)

// enqueueOrderStatusEmailTaskIfEligible 有收件邮箱时入队状态邮件任务。
// 返回值 skipped 表示任务被策略跳过（无收件人）。
func enqueueOrderStatusEmailTaskIfEligible(ctx context.Context, orderRepo repository.OrderRepository, queueClient *queue.Client, orderID string, status string) (skipped bool, err error) {
	if queueClient == nil || orderID == "" {
		return true, nil
	}
	if orderRepo != nil {
		receiverEmail, lookupErr := orderRepo.ResolveReceiverEmailByOrderID(ctx, orderID)
		if lookupErr == nil && strings.TrimSpace(receiverEmail) == "" {
			return true, nil
		}
	}

	if err := queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  strings.TrimSpace(status),
	}); err != nil {
		return false, err
	}
	return false, nil
}
