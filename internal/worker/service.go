package worker

import (
	"context"
	"errors"
	"time"

	"github.com/autoluxe/internal/config"
	"github.com/autoluxe/internal/logger"
	"github.com/autoluxe/internal/queue"

	"github.com/hibiken/asynq"
)

// ErrQueueDisabled 队列未启用时无法启动消费者
var ErrQueueDisabled = errors.New("queue disabled")

const workerShutdownTimeout = 8 * time.Second

// Service asynq 消费者服务
type Service struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, ErrQueueDisabled
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	serverCfg.Logger = logger.S()
	serverCfg.ShutdownTimeout = workerShutdownTimeout
	serverCfg.ErrorHandler = asynq.ErrorHandlerFunc(reportTaskFailure)

	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{server: asynq.NewServer(opt, serverCfg), mux: mux}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	return "worker"
}

// Start 阻塞运行直到 Stop
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("worker not initialized")
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	s.server.Shutdown()
	return nil
}

func reportTaskFailure(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	logger.Warnw("worker_task_failed",
		"type", task.Type(),
		"retried", retried,
		"max_retry", maxRetry,
		"error", err,
	)
}
