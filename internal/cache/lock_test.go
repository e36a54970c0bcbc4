package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestKeyedLockerSerializesSameKey(t *testing.T) {
	locker := NewKeyedLocker(time.Second, time.Second)
	var active int32
	var maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := locker.WithLock(context.Background(), "cart:u1", func() error {
				current := atomic.AddInt32(&active, 1)
				for {
					seen := atomic.LoadInt32(&maxActive)
					if current <= seen || atomic.CompareAndSwapInt32(&maxActive, seen, current) {
						break
					}
				}
				time.Sleep(2 * time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
			if err != nil {
				t.Errorf("with lock failed: %v", err)
			}
		}()
	}
	wg.Wait()
	if maxActive != 1 {
		t.Fatalf("max concurrent holders want 1 got %d", maxActive)
	}
	if len(locker.local) != 0 {
		t.Fatalf("local lock entries should be released, got %d", len(locker.local))
	}
}

func TestKeyedLockerTimesOut(t *testing.T) {
	locker := NewKeyedLocker(time.Second, 20*time.Millisecond)
	unlock, err := locker.Lock(context.Background(), "cart:u2")
	if err != nil {
		t.Fatalf("first lock failed: %v", err)
	}
	defer unlock()

	_, err = locker.Lock(context.Background(), "cart:u2")
	if !errors.Is(err, ErrLockTimeout) {
		t.Fatalf("second lock want timeout got %v", err)
	}
}

func TestKeyedLockerDifferentKeysDoNotBlock(t *testing.T) {
	locker := NewKeyedLocker(time.Second, 20*time.Millisecond)
	unlock, err := locker.Lock(context.Background(), "cart:a")
	if err != nil {
		t.Fatalf("lock a failed: %v", err)
	}
	defer unlock()
	unlockB, err := locker.Lock(context.Background(), "cart:b")
	if err != nil {
		t.Fatalf("lock b should not block: %v", err)
	}
	unlockB()
}

func TestBuildKeyUsesPrefix(t *testing.T) {
	if got := BuildKey("catalog:Product:abc"); got != redisPrefix+":catalog:Product:abc" {
		t.Fatalf("unexpected key %s", got)
	}
	if got := BuildKey("  "); got != redisPrefix {
		t.Fatalf("blank key want prefix got %s", got)
	}
}
