package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockTimeout 等待锁超时
var ErrLockTimeout = errors.New("lock wait timeout")

const lockRetryInterval = 25 * time.Millisecond

var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// KeyedLocker 按 key 互斥（Redis 启用时跨进程，否则进程内）
type KeyedLocker struct {
	ttl  time.Duration
	wait time.Duration

	mu    sync.Mutex
	local map[string]*localLock
}

type localLock struct {
	ch   chan struct{}
	refs int
}

// NewKeyedLocker 创建按 key 互斥的锁
// ttl 为 Redis 锁的过期时间，wait 为最长等待时间
func NewKeyedLocker(ttl, wait time.Duration) *KeyedLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	if wait <= 0 {
		wait = ttl
	}
	return &KeyedLocker{
		ttl:   ttl,
		wait:  wait,
		local: make(map[string]*localLock),
	}
}

// WithLock 持有 key 对应的锁执行 fn
func (l *KeyedLocker) WithLock(ctx context.Context, key string, fn func() error) error {
	unlock, err := l.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

// Lock 获取锁，返回释放函数
func (l *KeyedLocker) Lock(ctx context.Context, key string) (func(), error) {
	if Enabled() {
		return l.lockRedis(ctx, key)
	}
	return l.lockLocal(ctx, key)
}

func (l *KeyedLocker) lockRedis(ctx context.Context, key string) (func(), error) {
	client := Client()
	redisKey := buildKey("lock:" + key)
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)
	for {
		ok, err := client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				// 释放不受请求 context 取消影响
				releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = releaseLockScript.Run(releaseCtx, client, []string{redisKey}, token).Err()
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

func (l *KeyedLocker) lockLocal(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	entry, ok := l.local[key]
	if !ok {
		entry = &localLock{ch: make(chan struct{}, 1)}
		l.local[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	timer := time.NewTimer(l.wait)
	defer timer.Stop()
	select {
	case entry.ch <- struct{}{}:
	case <-ctx.Done():
		l.releaseRef(key, entry)
		return nil, ctx.Err()
	case <-timer.C:
		l.releaseRef(key, entry)
		return nil, ErrLockTimeout
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.ch
			l.releaseRef(key, entry)
		})
	}, nil
}

func (l *KeyedLocker) releaseRef(key string, entry *localLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs <= 0 {
		delete(l.local, key)
	}
}
