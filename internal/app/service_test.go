package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/autoluxe/internal/config"
)

type fakeService struct {
	name     string
	startErr error
	block    bool
	stopped  atomic.Bool
	release  chan struct{}
}

func newFakeService(name string, block bool, startErr error) *fakeService {
	return &fakeService{name: name, block: block, startErr: startErr, release: make(chan struct{})}
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.block {
		<-s.release
		return nil
	}
	return s.startErr
}

func (s *fakeService) Stop(ctx context.Context) error {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.release)
	}
	return nil
}

func TestRunnerStopsAllWhenOneFails(t *testing.T) {
	api := newFakeService("http", true, nil)
	worker := newFakeService("worker", false, errors.New("boom"))

	err := NewRunner(api, worker).Run(context.Background(), time.Second, nil)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("want boom got %v", err)
	}
	if !api.stopped.Load() || !worker.stopped.Load() {
		t.Fatalf("all services should be stopped")
	}
}

func TestRunnerStopsOnContextCancel(t *testing.T) {
	api := newFakeService("http", true, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewRunner(api).Run(ctx, time.Second, nil)
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("cancel should return nil got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not stop after cancel")
	}
	if !api.stopped.Load() {
		t.Fatalf("service should be stopped")
	}
}

func TestRunnerRequiresServices(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("empty runner should fail")
	}
}

func TestBuildRunnerValidatesInput(t *testing.T) {
	if _, _, err := BuildRunner(nil, ModeAll); err == nil {
		t.Fatalf("nil config should fail")
	}
	if _, _, err := BuildRunner(&config.Config{}, "bogus"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]struct {
		want string
		ok   bool
	}{
		"":       {ModeAll, true},
		" API ":  {ModeAPI, true},
		"worker": {ModeWorker, true},
		"cron":   {"cron", false},
	}
	for raw, tc := range cases {
		got, ok := ParseMode(raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("mode %q want (%s,%v) got (%s,%v)", raw, tc.want, tc.ok, got, ok)
		}
	}
}

func TestNormalizeOptionsDefaults(t *testing.T) {
	opts := normalizeOptions(Options{Mode: "Worker"})
	if opts.Mode != ModeWorker {
		t.Fatalf("mode want worker got %s", opts.Mode)
	}
	if len(opts.Signals) != 2 {
		t.Fatalf("default signals want 2 got %d", len(opts.Signals))
	}
	if opts.ShutdownTimeout <= 0 || opts.Logger == nil {
		t.Fatalf("defaults not applied: %+v", opts)
	}
}
