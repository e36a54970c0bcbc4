package queue

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/autoluxe/internal/config"
	"github.com/autoluxe/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// CriticalQueue 高优先级队列（资源清理）
	CriticalQueue = constants.QueueCritical

	defaultConcurrency   = 10
	assetReleaseMaxRetry = 5
	statusEmailMaxRetry  = 3
	statusEmailTimeout   = 30 * time.Second
)

// Client 队列客户端封装，未启用时所有投递均为空操作
type Client struct {
	inner *asynq.Client
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{inner: asynq.NewClient(redisOpt(cfg))}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}

// EnqueueOrderStatusEmail 推送订单状态邮件任务
func (c *Client) EnqueueOrderStatusEmail(payload OrderStatusEmailPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderStatusEmailTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, []asynq.Option{
		asynq.Queue(DefaultQueue),
		asynq.MaxRetry(statusEmailMaxRetry),
		asynq.Timeout(statusEmailTimeout),
	}, opts)
}

// EnqueueCatalogAssetRelease 推送商品图片释放任务
func (c *Client) EnqueueCatalogAssetRelease(payload CatalogAssetReleasePayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	if len(payload.URLs) == 0 {
		return nil
	}
	task, err := NewCatalogAssetReleaseTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, []asynq.Option{
		asynq.Queue(CriticalQueue),
		asynq.MaxRetry(assetReleaseMaxRetry),
	}, opts)
}

// enqueue 调用方选项覆盖默认选项
func (c *Client) enqueue(task *asynq.Task, defaults, overrides []asynq.Option) error {
	if task == nil {
		return errors.New("queue task is nil")
	}
	_, err := c.inner.Enqueue(task, append(defaults, overrides...)...)
	return err
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency: defaultConcurrency,
		Queues:      map[string]int{DefaultQueue: 1, CriticalQueue: 1},
	}
	if cfg == nil {
		return redisOpt(nil), serverCfg
	}
	if cfg.Concurrency > 0 {
		serverCfg.Concurrency = cfg.Concurrency
	}
	if len(cfg.Queues) > 0 {
		serverCfg.Queues = cfg.Queues
	}
	return redisOpt(cfg), serverCfg
}

func redisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
